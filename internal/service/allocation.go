package service

import (
	"context"
	"errors"
	"fmt"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

// ReserveSlot binds the calling client and their car to a free slot and
// marks it occupied. The slot must exist and be free; reservations never
// create dangling allocations.
func (s *ParkingService) ReserveSlot(ctx context.Context, payload domain.AllocationPayload, client string) (string, *domain.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payload.ParkingID == "" || payload.CarModel == "" {
		return "", nil, ErrInvalidInput
	}

	parking, err := s.parkingRepo.FindByID(ctx, payload.ParkingID)
	if err != nil {
		return "", nil, err
	}
	if parking.IsOccupied {
		return "", nil, ErrSlotOccupied
	}

	allocation := &domain.Allocation{
		ID:          uuid.NewString(),
		ParkingID:   parking.ID,
		Client:      client,
		CarModel:    payload.CarModel,
		Status:      domain.AllocationActive,
		CreatedDate: s.now(),
	}
	if _, err := s.allocationRepo.Create(ctx, allocation); err != nil {
		return "", nil, fmt.Errorf("creating allocation: %w", err)
	}

	parking.IsOccupied = true
	parking.UpdatedAt = null.TimeFrom(s.now())
	if _, err := s.parkingRepo.Update(ctx, parking); err != nil {
		return "", nil, fmt.Errorf("occupying parking slot: %w", err)
	}
	s.notifySlot(parking, "reserved")

	msg := fmt.Sprintf("Your Parking ID: %s your Slot: %s", allocation.ID, parking.ParkingSlot)
	return msg, allocation, nil
}

// PickupCar ends the billable period: it authorizes the caller, releases
// the slot, computes the price from elapsed time, and marks the allocation
// completed so it cannot be billed twice.
func (s *ParkingService) PickupCar(ctx context.Context, allocationID string, client string) (*domain.CarResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pickupCar(ctx, allocationID, client)
}

// pickupCar is the lock-free body shared with valet delivery.
func (s *ParkingService) pickupCar(ctx context.Context, allocationID string, client string) (*domain.CarResponse, error) {
	if allocationID == "" {
		return nil, fmt.Errorf("%w: invalid ID", ErrInvalidInput)
	}

	allocation, err := s.allocationRepo.FindByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.Client != client {
		return nil, fmt.Errorf("%w: you are not the owner of the car in the slot", ErrUnauthorized)
	}
	if allocation.Status == domain.AllocationCompleted {
		return nil, ErrAllocationCompleted
	}

	parking, err := s.parkingRepo.FindByID(ctx, allocation.ParkingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: parking slot not found", repository.ErrNotFound)
		}
		return nil, err
	}

	now := s.now()
	durationHours, price, err := computePrice(allocation, parking, now)
	if err != nil {
		return nil, err
	}

	parking.IsOccupied = false
	parking.UpdatedAt = null.TimeFrom(now)
	if _, err := s.parkingRepo.Update(ctx, parking); err != nil {
		return nil, fmt.Errorf("releasing parking slot: %w", err)
	}

	allocation.Status = domain.AllocationCompleted
	allocation.CompletedAt = null.TimeFrom(now)
	if _, err := s.allocationRepo.Update(ctx, allocation); err != nil {
		return nil, fmt.Errorf("completing allocation: %w", err)
	}
	s.notifySlot(parking, "released")

	return &domain.CarResponse{
		Msg:   fmt.Sprintf("You have parked for: %g Hrs. Final cost: $%g", durationHours, price),
		Price: price,
	}, nil
}

// GetAllocation returns an allocation to its owning client or to the lot
// owner.
func (s *ParkingService) GetAllocation(ctx context.Context, id string, principal string) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if allocation.Client != principal && !s.isOwner(ctx, principal) {
		return nil, ErrUnauthorized
	}
	return allocation, nil
}

// isOwner reports whether the caller is the registered owner. It never
// fails: with no owner initialized it is simply false.
func (s *ParkingService) isOwner(ctx context.Context, principal string) bool {
	owner, err := s.ownerRepo.Find(ctx)
	if err != nil {
		return false
	}
	return owner.Principal == principal
}

// RequestValetDelivery performs the pickup on the client's behalf, records
// the valet request, and adds the flat surcharge to the pickup price.
func (s *ParkingService) RequestValetDelivery(ctx context.Context, payload domain.ValetPayload, client string) (*domain.CarResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payload.AllocationID == "" || payload.ClientLocation == "" {
		return nil, ErrInvalidInput
	}

	pickup, err := s.pickupCar(ctx, payload.AllocationID, client)
	if err != nil {
		return nil, fmt.Errorf("failed to handle valet delivery: %w", err)
	}

	valet := &domain.Valet{
		ID:             uuid.NewString(),
		AllocationID:   payload.AllocationID,
		ClientLocation: payload.ClientLocation,
		CreatedDate:    s.now(),
	}
	if _, err := s.valetRepo.Create(ctx, valet); err != nil {
		return nil, fmt.Errorf("creating valet record: %w", err)
	}

	total := pickup.Price + valetSurcharge
	return &domain.CarResponse{
		Msg:   fmt.Sprintf("Your car will be delivered to %s new total cost: $%g", valet.ClientLocation, total),
		Price: total,
	}, nil
}
