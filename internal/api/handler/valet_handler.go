package handler

import (
	"net/http"

	"parking_billing/internal/api/middleware"
	"parking_billing/internal/domain"
	"parking_billing/internal/service"

	"github.com/gin-gonic/gin"
)

type ValetHandler struct {
	parkingService *service.ParkingService
}

func NewValetHandler(ps *service.ParkingService) *ValetHandler {
	return &ValetHandler{parkingService: ps}
}

// POST /valet
func (h *ValetHandler) RequestValetDelivery(c *gin.Context) {
	var payload domain.ValetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.parkingService.RequestValetDelivery(c.Request.Context(), payload, middleware.Principal(c))
	if err != nil {
		// Valet wraps pickup errors with its own context; the sentinel
		// still drives the status code.
		pickupError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
