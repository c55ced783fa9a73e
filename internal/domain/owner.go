package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// Owner is the single administrative identity permitted to manage slots.
// At most one record exists for the lifetime of the store.
type Owner struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Principal   string    `json:"principal"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedAt   null.Time `json:"updated_at"`
}

type OwnerPayload struct {
	Name string `json:"name" binding:"required"`
}
