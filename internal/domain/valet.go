package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// Valet is an add-on service record created after a successful pickup. It
// never mutates the allocation or the parking slot it references.
type Valet struct {
	ID             string    `json:"id"`
	AllocationID   string    `json:"allocation_id"`
	ClientLocation string    `json:"client_location"`
	CreatedDate    time.Time `json:"created_date"`
	UpdatedAt      null.Time `json:"updated_at"`
}

type ValetPayload struct {
	AllocationID   string `json:"allocation_id" binding:"required"`
	ClientLocation string `json:"client_location" binding:"required"`
}
