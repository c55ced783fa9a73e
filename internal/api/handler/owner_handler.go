package handler

import (
	"errors"
	"net/http"

	"parking_billing/internal/api/middleware"
	"parking_billing/internal/domain"
	"parking_billing/internal/service"

	"github.com/gin-gonic/gin"
)

type OwnerHandler struct {
	parkingService *service.ParkingService
}

func NewOwnerHandler(ps *service.ParkingService) *OwnerHandler {
	return &OwnerHandler{parkingService: ps}
}

// POST /owner
func (h *OwnerHandler) InitOwner(c *gin.Context) {
	var payload domain.OwnerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, err := h.parkingService.InitOwner(c.Request.Context(), payload.Name, middleware.Principal(c))
	if err != nil {
		if errors.Is(err, service.ErrOwnerAlreadyInitialized) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not initialize owner", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, owner)
}

// GET /owner
func (h *OwnerHandler) GetOwner(c *gin.Context) {
	owner, err := h.parkingService.GetOwner(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrOwnerNotInitialized) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch owner"})
		return
	}
	c.JSON(http.StatusOK, owner)
}

// PUT /owner
func (h *OwnerHandler) UpdateOwner(c *gin.Context) {
	var payload domain.OwnerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, err := h.parkingService.UpdateOwner(c.Request.Context(), payload.Name, middleware.Principal(c))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrOwnerNotInitialized) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update owner", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, owner)
}
