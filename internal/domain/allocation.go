package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type AllocationStatus string

const (
	AllocationActive    AllocationStatus = "active"
	AllocationCompleted AllocationStatus = "completed"
)

// Allocation records a client claiming a slot for a car. CreatedDate is the
// reservation start instant and the anchor of the billable period. Pickup
// marks the allocation completed rather than deleting it, so the history of
// a slot stays queryable.
type Allocation struct {
	ID          string           `json:"id"`
	ParkingID   string           `json:"parking_id"`
	Client      string           `json:"client"`
	CarModel    string           `json:"car_model"`
	Status      AllocationStatus `json:"status"`
	CreatedDate time.Time        `json:"created_date"`
	CompletedAt null.Time        `json:"completed_at"`
}

type AllocationPayload struct {
	ParkingID string `json:"parking_id" binding:"required"`
	CarModel  string `json:"car_model" binding:"required"`
}

// CarResponse is returned by pickup and valet operations.
type CarResponse struct {
	Msg   string  `json:"msg"`
	Price float64 `json:"price"`
}
