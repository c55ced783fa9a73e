package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// Parking is a single parking space. Price is kept as text, exactly as it
// arrives from the owner; it is validated numeric at write time and parsed
// again when a pickup is billed.
type Parking struct {
	ID          string    `json:"id"`
	ParkingSlot string    `json:"parking_slot"`
	IsOccupied  bool      `json:"is_occupied"`
	Price       string    `json:"price"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedAt   null.Time `json:"updated_at"`
}

type ParkingPayload struct {
	ParkingSlot string `json:"parking_slot" binding:"required"`
	Price       string `json:"price" binding:"required"`
}

// SlotStatusNotification is pushed to websocket subscribers whenever a
// slot's occupancy changes.
type SlotStatusNotification struct {
	Type        string    `json:"type"`
	SlotID      string    `json:"slot_id"`
	ParkingSlot string    `json:"parking_slot"`
	IsOccupied  bool      `json:"is_occupied"`
	Event       string    `json:"event"`
	Timestamp   time.Time `json:"timestamp"`
}
