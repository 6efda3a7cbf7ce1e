package handler

import (
	"context"
	"errors"
	"net/http"

	"coordinate-extractor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CoordinatesHandler triggers the coordinate transform on demand
type CoordinatesHandler struct {
	service CoordinateService
}

// Service interface for dependency injection
type CoordinateService interface {
	Process(context.Context) (service.ProcessResult, error)
}

// NewCoordinatesHandler creates a new coordinates handler
func NewCoordinatesHandler(svc CoordinateService) *CoordinatesHandler {
	return &CoordinatesHandler{service: svc}
}

// ProcessCoordinates handles GET /process-coordinates requests
//
//	@Summary	Extract polygon coordinates from the email workbook
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	422	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/process-coordinates [get]
func (h *CoordinatesHandler) ProcessCoordinates(c *gin.Context) {
	result, err := h.service.Process(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("on-demand processing failed")
		if errors.Is(err, service.ErrColumnNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email column not found in workbook"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process coordinates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "coordinates processed and saved",
		"rows":    result.Rows,
	})
}
