package handler

import (
	"errors"
	"net/http"

	"parking_billing/internal/api/middleware"
	"parking_billing/internal/domain"
	"parking_billing/internal/repository"
	"parking_billing/internal/service"

	"github.com/gin-gonic/gin"
)

type AllocationHandler struct {
	parkingService *service.ParkingService
}

func NewAllocationHandler(ps *service.ParkingService) *AllocationHandler {
	return &AllocationHandler{parkingService: ps}
}

// POST /allocations
func (h *AllocationHandler) ReserveSlot(c *gin.Context) {
	var payload domain.AllocationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, allocation, err := h.parkingService.ReserveSlot(c.Request.Context(), payload, middleware.Principal(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking slot not found"})
		case errors.Is(err, service.ErrSlotOccupied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not allocate parking space", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": msg, "allocation": allocation})
}

// GET /allocations/:id
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	allocation, err := h.parkingService.GetAllocation(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "allocation not found"})
		case errors.Is(err, service.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch allocation"})
		}
		return
	}
	c.JSON(http.StatusOK, allocation)
}

// POST /allocations/:id/pickup
func (h *AllocationHandler) PickupCar(c *gin.Context) {
	resp, err := h.parkingService.PickupCar(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		pickupError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pickupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAllocationCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not pick up car", "details": err.Error()})
	}
}
