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

type ParkingSlotHandler struct {
	parkingService *service.ParkingService
}

func NewParkingSlotHandler(ps *service.ParkingService) *ParkingSlotHandler {
	return &ParkingSlotHandler{parkingService: ps}
}

// slotMutationError maps the shared owner-gate failures of slot mutations.
// Returns true when the error has been written.
func slotMutationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOwnerNotInitialized):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// POST /parking-slots
func (h *ParkingSlotHandler) AddParkingSlot(c *gin.Context) {
	var payload domain.ParkingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.parkingService.AddParkingSlot(c.Request.Context(), payload, middleware.Principal(c))
	if err != nil {
		if !slotMutationError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add parking slot", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /parking-slots/available
func (h *ParkingSlotHandler) GetAvailableSlots(c *gin.Context) {
	slots, err := h.parkingService.GetAvailableSlots(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoAvailableSlots) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list available slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /parking-slots
func (h *ParkingSlotHandler) GetAllSlots(c *gin.Context) {
	slots, err := h.parkingService.GetAllSlots(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		if !slotMutationError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list parking slots"})
		}
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /parking-slots/:id
func (h *ParkingSlotHandler) GetParkingSlotByID(c *gin.Context) {
	slot, err := h.parkingService.GetParkingSlotByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch parking slot"})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// PUT /parking-slots/:id
func (h *ParkingSlotHandler) UpdateParkingSlot(c *gin.Context) {
	var payload domain.ParkingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.parkingService.UpdateParkingSlot(c.Request.Context(), c.Param("id"), payload, middleware.Principal(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking slot not found"})
			return
		}
		if !slotMutationError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update parking slot", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /parking-slots/:id
func (h *ParkingSlotHandler) DeleteParkingSlot(c *gin.Context) {
	id := c.Param("id")
	err := h.parkingService.DeleteParkingSlot(c.Request.Context(), id, middleware.Principal(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking slot not found"})
			return
		}
		if !slotMutationError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete parking slot", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Parking slot of ID: " + id + " removed successfully"})
}
