package handler

import (
	"errors"
	"net/http"

	"coordinate-extractor/internal/service"

	"github.com/gin-gonic/gin"
)

// OrdersHandler serves the cached order total
type OrdersHandler struct {
	service OrdersService
}

// OrdersService interface for dependency injection
type OrdersService interface {
	Total() (float64, error)
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(svc OrdersService) *OrdersHandler {
	return &OrdersHandler{service: svc}
}

// Orders handles GET /orders requests
//
//	@Summary	Total number of ordered items
//	@Produce	json
//	@Success	200	{object}	map[string]float64
//	@Failure	500	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/orders [get]
func (h *OrdersHandler) Orders(c *gin.Context) {
	total, err := h.service.Total()
	if err != nil {
		if errors.Is(err, service.ErrOrdersNotLoaded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data is still loading, please try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalOrders": total})
}
