package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveTestSlot(t *testing.T, s *ParkingService, parkingID string) *domain.Allocation {
	t.Helper()
	_, allocation, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{
		ParkingID: parkingID,
		CarModel:  "Tesla",
	}, clientPrincipal)
	require.NoError(t, err)
	return allocation
}

func TestReserveSlot(t *testing.T) {
	s, clock := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")

	msg, allocation, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{
		ParkingID: id,
		CarModel:  "Tesla",
	}, clientPrincipal)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("Your Parking ID: %s your Slot: A1", allocation.ID), msg)
	assert.Equal(t, id, allocation.ParkingID)
	assert.Equal(t, clientPrincipal, allocation.Client)
	assert.Equal(t, "Tesla", allocation.CarModel)
	assert.Equal(t, domain.AllocationActive, allocation.Status)
	assert.Equal(t, clock.now, allocation.CreatedDate)
	assert.False(t, allocation.CompletedAt.Valid)

	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, slot.IsOccupied)

	// The reserved slot is no longer available.
	_, err = s.GetAvailableSlots(context.Background())
	assert.ErrorIs(t, err, ErrNoAvailableSlots)
}

func TestReserveSlotValidation(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")

	_, _, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{ParkingID: "", CarModel: "Tesla"}, clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.ReserveSlot(context.Background(), domain.AllocationPayload{ParkingID: id, CarModel: ""}, clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReserveUnknownSlot(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)

	_, _, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{ParkingID: "no-such-id", CarModel: "Tesla"}, clientPrincipal)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReserveOccupiedSlot(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	reserveTestSlot(t, s, id)

	_, _, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{ParkingID: id, CarModel: "Audi"}, "other-client")
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestPickupCar(t *testing.T) {
	s, clock := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	clock.advance(2 * time.Hour)
	resp, err := s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)

	// Two hours at $10/hr bills exactly $20.
	assert.Equal(t, 20.0, resp.Price)
	assert.Equal(t, "You have parked for: 2 Hrs. Final cost: $20", resp.Msg)

	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, slot.IsOccupied)

	stored, err := s.GetAllocation(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationCompleted, stored.Status)
	assert.True(t, stored.CompletedAt.Valid)
	assert.Equal(t, clock.now, stored.CompletedAt.Time)

	// The slot is reservable again.
	available, err := s.GetAvailableSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, id, available[0].ID)
}

func TestPickupCarFractionalHours(t *testing.T) {
	s, clock := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "8")
	allocation := reserveTestSlot(t, s, id)

	clock.advance(30 * time.Minute)
	resp, err := s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 4.0, resp.Price)
	assert.Equal(t, "You have parked for: 0.5 Hrs. Final cost: $4", resp.Msg)
}

func TestPickupByWrongClientLeavesStateUntouched(t *testing.T) {
	s, clock := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	clock.advance(time.Hour)
	_, err := s.PickupCar(context.Background(), allocation.ID, "intruder")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Nothing changed: the slot stays occupied and the allocation active.
	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, slot.IsOccupied)

	stored, err := s.GetAllocation(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationActive, stored.Status)

	// The rightful client can still pick up afterwards.
	_, err = s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	assert.NoError(t, err)
}

func TestPickupTwiceFails(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	_, err := s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)

	_, err = s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	assert.ErrorIs(t, err, ErrAllocationCompleted)
}

func TestPickupUnknownAllocation(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.PickupCar(context.Background(), "no-such-id", clientPrincipal)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.PickupCar(context.Background(), "", clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPickupAfterSlotDeleted(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	require.NoError(t, s.DeleteParkingSlot(context.Background(), id, ownerPrincipal))

	_, err := s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPickupNonNumericLegacyPrice(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	// Corrupt the stored price under the validation layer, the way a legacy
	// record written before write-time validation would look.
	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	slot.Price = "ten dollars"
	_, err = s.parkingRepo.Update(context.Background(), slot)
	require.NoError(t, err)

	_, err = s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestGetAllocationAuthorization(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	_, err := s.GetAllocation(context.Background(), allocation.ID, clientPrincipal)
	assert.NoError(t, err)

	// The lot owner can inspect any allocation.
	_, err = s.GetAllocation(context.Background(), allocation.ID, ownerPrincipal)
	assert.NoError(t, err)

	_, err = s.GetAllocation(context.Background(), allocation.ID, "intruder")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequestValetDelivery(t *testing.T) {
	s, clock := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	clock.advance(2 * time.Hour)
	resp, err := s.RequestValetDelivery(context.Background(), domain.ValetPayload{
		AllocationID:   allocation.ID,
		ClientLocation: "Main St 12",
	}, clientPrincipal)
	require.NoError(t, err)

	// Pickup price plus the flat valet surcharge.
	assert.Equal(t, 25.0, resp.Price)
	assert.Equal(t, "Your car will be delivered to Main St 12 new total cost: $25", resp.Msg)

	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, slot.IsOccupied)
}

func TestRequestValetDeliveryValidation(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	_, err := s.RequestValetDelivery(context.Background(), domain.ValetPayload{AllocationID: "", ClientLocation: "Main St"}, clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.RequestValetDelivery(context.Background(), domain.ValetPayload{AllocationID: allocation.ID, ClientLocation: ""}, clientPrincipal)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestValetDeliveryPropagatesPickupFailure(t *testing.T) {
	s, _ := newTestService(t)
	initTestOwner(t, s)
	id := addTestSlot(t, s, "A1", "10")
	allocation := reserveTestSlot(t, s, id)

	_, err := s.RequestValetDelivery(context.Background(), domain.ValetPayload{
		AllocationID:   allocation.ID,
		ClientLocation: "Main St 12",
	}, "intruder")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The failed valet request must not have released the slot.
	slot, err := s.GetParkingSlotByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, slot.IsOccupied)

	_, err = s.RequestValetDelivery(context.Background(), domain.ValetPayload{
		AllocationID:   allocation.ID,
		ClientLocation: "Main St 12",
	}, clientPrincipal)
	require.NoError(t, err)

	// A completed allocation cannot be billed again through valet either.
	_, err = s.RequestValetDelivery(context.Background(), domain.ValetPayload{
		AllocationID:   allocation.ID,
		ClientLocation: "Main St 12",
	}, clientPrincipal)
	assert.ErrorIs(t, err, ErrAllocationCompleted)
}

// TestParkingLifecycle walks the full flow: the owner opens the lot and adds
// a slot, a client parks for an hour, picks up, and the slot is free again.
func TestParkingLifecycle(t *testing.T) {
	s, clock := newTestService(t)

	_, err := s.InitOwner(context.Background(), "Downtown Lot", ownerPrincipal)
	require.NoError(t, err)

	slotID, err := s.AddParkingSlot(context.Background(), domain.ParkingPayload{ParkingSlot: "A1", Price: "10"}, ownerPrincipal)
	require.NoError(t, err)

	available, err := s.GetAvailableSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)

	msg, allocation, err := s.ReserveSlot(context.Background(), domain.AllocationPayload{
		ParkingID: slotID,
		CarModel:  "Tesla",
	}, clientPrincipal)
	require.NoError(t, err)
	assert.Contains(t, msg, allocation.ID)
	assert.Contains(t, msg, "A1")

	_, err = s.GetAvailableSlots(context.Background())
	assert.ErrorIs(t, err, ErrNoAvailableSlots)

	clock.advance(time.Hour)
	resp, err := s.PickupCar(context.Background(), allocation.ID, clientPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.Price)
	assert.Equal(t, "You have parked for: 1 Hrs. Final cost: $10", resp.Msg)

	available, err = s.GetAvailableSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, slotID, available[0].ID)
}
