package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"complaint-service/internal/http/middleware"
	"complaint-service/internal/service"
	"complaint-service/internal/storage"
)

const maxMultipartMemory = 32 << 20

func (h *Handler) createComplaint(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	input := service.CreateComplaintInput{
		VehicleNumber:      c.PostForm("vehicleNumber"),
		VehicleType:        c.PostForm("vehicleType"),
		VehicleModel:       c.PostForm("vehicleModel"),
		VehicleColor:       c.PostForm("vehicleColor"),
		TheftDate:          c.PostForm("theftDate"),
		TheftLocation:      c.PostForm("theftLocation"),
		Description:        c.PostForm("description"),
		ComplainantName:    c.PostForm("complainantName"),
		ComplainantPhone:   c.PostForm("complainantPhone"),
		ComplainantEmail:   c.PostForm("complainantEmail"),
		ComplainantAddress: c.PostForm("complainantAddress"),
	}

	// Validate before writing anything to disk so a rejected complaint
	// leaves no orphaned files behind.
	if verrs := service.ValidateComplaint(input); len(verrs) > 0 {
		h.handleError(c, verrs)
		return
	}

	files := c.Request.MultipartForm.File["documents"]
	if len(files) > h.maxDocuments {
		c.JSON(http.StatusBadRequest, errorResponse("too many documents attached"))
		return
	}
	for _, file := range files {
		name, err := h.documents.Save(file)
		if err != nil {
			if errors.Is(err, storage.ErrDisallowedType) || errors.Is(err, storage.ErrTooLarge) {
				c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
				return
			}
			h.handleError(c, err)
			return
		}
		input.Documents = append(input.Documents, name)
	}

	result, err := h.complaintService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Complaint submitted successfully",
		"caseNumber":  result.CaseNumber,
		"complaintId": result.ComplaintID,
	})
}

func (h *Handler) listComplaints(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	complaints, err := h.complaintService.List(c.Request.Context(), principal, parseListQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) getComplaint(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseComplaintID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid complaint id"))
		return
	}

	details, err := h.complaintService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) serveDocument(c *gin.Context) {
	path, err := h.documents.Path(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("File not found"))
		return
	}
	c.File(path)
}

func parseListQuery(c *gin.Context) service.ListComplaintsOptions {
	opts := service.ListComplaintsOptions{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			opts.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			opts.Offset = v
		}
	}
	return opts
}

func parseComplaintID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
}
