package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"coordinate-extractor/internal/models"
	"coordinate-extractor/internal/service"

	"github.com/gin-gonic/gin"
)

// PolygonsHandler handles point-in-polygon lookups
type PolygonsHandler struct {
	service PolygonService
}

// Service interface for dependency injection
type PolygonService interface {
	FindContaining(context.Context, float64, float64) ([]models.Polygon, error)
}

// NewPolygonsHandler creates a new polygons handler
func NewPolygonsHandler(svc PolygonService) *PolygonsHandler {
	return &PolygonsHandler{service: svc}
}

// Polygons handles GET /polygons requests
//
//	@Summary	Imported polygons covering a point
//	@Produce	json
//	@Param		lat	query		number	true	"latitude"
//	@Param		lon	query		number	true	"longitude"
//	@Success	200	{array}		models.Polygon
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/polygons [get]
func (h *PolygonsHandler) Polygons(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	polygons, err := h.service.FindContaining(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, polygons)
}
