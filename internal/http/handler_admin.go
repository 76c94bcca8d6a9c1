package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"complaint-service/internal/http/middleware"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

func (h *Handler) adminListComplaints(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	complaints, err := h.complaintService.ListAll(c.Request.Context(), principal, parseListQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) adminGetComplaint(c *gin.Context) {
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

	details, err := h.complaintService.GetAny(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) adminUpdateComplaint(c *gin.Context) {
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

	var req struct {
		Status          string  `json:"status" binding:"required"`
		AssignedOfficer *string `json:"assignedOfficer"`
		Message         string  `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateComplaintInput{
		Status:          model.ComplaintStatus(strings.TrimSpace(req.Status)),
		AssignedOfficer: req.AssignedOfficer,
		Message:         req.Message,
	}

	if err := h.complaintService.Update(c.Request.Context(), principal, id, input); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint updated successfully"})
}
