package service

import (
	"fmt"
	"strconv"
	"time"

	"parking_billing/internal/domain"
)

// nanosPerHour converts the clock's nanosecond durations to billable hours.
// The constant is an external contract shared with every client of the
// service; it is not a tunable.
const nanosPerHour = 3_600_000_000_000

// valetSurcharge is the flat fee added on top of the pickup price, in the
// same currency unit as a slot's price per hour.
const valetSurcharge = 5.0

// computePrice derives the billable duration and price for an allocation
// against its slot. Fractional hours are billed as-is and negative
// durations (clock skew) are not clamped, so the price can be negative.
func computePrice(allocation *domain.Allocation, parking *domain.Parking, now time.Time) (durationHours float64, price float64, err error) {
	rate, err := strconv.ParseFloat(parking.Price, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPrice, parking.Price)
	}
	durationHours = float64(now.Sub(allocation.CreatedDate)) / nanosPerHour
	return durationHours, rate * durationHours, nil
}

// validatePrice rejects a price field that would fail billing later. Slots
// written before this check existed can still surface ErrInvalidPrice at
// pickup time.
func validatePrice(price string) error {
	if _, err := strconv.ParseFloat(price, 64); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}
	return nil
}
