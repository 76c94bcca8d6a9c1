package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaint-service/internal/service"
	"complaint-service/internal/storage"
)

type Handler struct {
	authService      *service.AuthService
	complaintService *service.ComplaintService
	documents        *storage.DocumentStore
	maxDocuments     int
	log              zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	complaintService *service.ComplaintService,
	documents *storage.DocumentStore,
	maxDocuments int,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:      authService,
		complaintService: complaintService,
		documents:        documents,
		maxDocuments:     maxDocuments,
		log:              log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.First(), "errors": verrs})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
