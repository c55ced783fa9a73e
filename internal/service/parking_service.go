package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

var ErrInvalidInput = errors.New("incomplete input data")
var ErrUnauthorized = errors.New("action reserved for the lot owner")
var ErrOwnerNotInitialized = errors.New("owner has not been initialized")
var ErrOwnerAlreadyInitialized = errors.New("owner has already been initialized")
var ErrNoAvailableSlots = errors.New("no available parking slots currently")
var ErrSlotOccupied = errors.New("parking slot is already occupied")
var ErrAllocationCompleted = errors.New("allocation has already been completed")
var ErrInvalidPrice = errors.New("parking price is not numeric")

// SlotNotifier receives occupancy transitions for fan-out to live
// subscribers. A nil notifier disables the feed.
type SlotNotifier interface {
	BroadcastSlotStatus(n domain.SlotStatusNotification)
}

// ParkingService owns the allocation lifecycle and billing state machine:
// the singleton owner, the slot registry, allocations and valet records.
// The mutex serializes every mutating operation against the store, so a
// reservation's two writes (create allocation, flip occupancy) are atomic
// with respect to any other mutation.
type ParkingService struct {
	mu             sync.Mutex
	ownerRepo      repository.OwnerRepository
	parkingRepo    repository.ParkingRepository
	allocationRepo repository.AllocationRepository
	valetRepo      repository.ValetRepository
	notifier       SlotNotifier
	now            func() time.Time
}

func NewParkingService(
	ownerRepo repository.OwnerRepository,
	parkingRepo repository.ParkingRepository,
	allocationRepo repository.AllocationRepository,
	valetRepo repository.ValetRepository,
	notifier SlotNotifier,
) *ParkingService {
	return &ParkingService{
		ownerRepo:      ownerRepo,
		parkingRepo:    parkingRepo,
		allocationRepo: allocationRepo,
		valetRepo:      valetRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Tests use it to simulate elapsed
// parking time.
func (s *ParkingService) WithClock(now func() time.Time) *ParkingService {
	s.now = now
	return s
}

// --- Owner ---

// InitOwner creates the singleton owner record. A second call always fails,
// regardless of input.
func (s *ParkingService) InitOwner(ctx context.Context, name string, principal string) (*domain.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownerRepo.Find(ctx); err == nil {
		return nil, ErrOwnerAlreadyInitialized
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking owner: %w", err)
	}

	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	owner := &domain.Owner{
		ID:          uuid.NewString(),
		Name:        name,
		Principal:   principal,
		CreatedDate: s.now(),
	}
	created, err := s.ownerRepo.Create(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrOwnerAlreadyInitialized
		}
		return nil, fmt.Errorf("creating owner: %w", err)
	}
	return created, nil
}

func (s *ParkingService) GetOwner(ctx context.Context) (*domain.Owner, error) {
	owner, err := s.ownerRepo.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOwnerNotInitialized
		}
		return nil, fmt.Errorf("finding owner: %w", err)
	}
	return owner, nil
}

// UpdateOwner renames the owner record. Metadata-only path; the owning
// principal never changes.
func (s *ParkingService) UpdateOwner(ctx context.Context, name string, principal string) (*domain.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.requireOwner(ctx, principal)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	owner.Name = name
	owner.UpdatedAt = null.TimeFrom(s.now())
	updated, err := s.ownerRepo.Update(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("updating owner: %w", err)
	}
	return updated, nil
}

// requireOwner is the authorization gate for owner-only operations: the
// owner must be initialized and the caller must be the owning principal.
func (s *ParkingService) requireOwner(ctx context.Context, principal string) (*domain.Owner, error) {
	owner, err := s.ownerRepo.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOwnerNotInitialized
		}
		return nil, fmt.Errorf("finding owner: %w", err)
	}
	if owner.Principal != principal {
		return nil, ErrUnauthorized
	}
	return owner, nil
}

// --- Slot registry ---

func (s *ParkingService) AddParkingSlot(ctx context.Context, payload domain.ParkingPayload, principal string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireOwner(ctx, principal); err != nil {
		return "", err
	}
	if payload.ParkingSlot == "" || payload.Price == "" {
		return "", ErrInvalidInput
	}
	if err := validatePrice(payload.Price); err != nil {
		return "", err
	}

	parking := &domain.Parking{
		ID:          uuid.NewString(),
		ParkingSlot: payload.ParkingSlot,
		IsOccupied:  false,
		Price:       payload.Price,
		CreatedDate: s.now(),
	}
	if _, err := s.parkingRepo.Create(ctx, parking); err != nil {
		return "", fmt.Errorf("creating parking slot: %w", err)
	}
	return parking.ID, nil
}

// GetAvailableSlots returns every unoccupied slot. An empty lot is reported
// as ErrNoAvailableSlots rather than an empty list, so callers can tell
// "none free" apart from "none configured".
func (s *ParkingService) GetAvailableSlots(ctx context.Context) ([]domain.Parking, error) {
	parkings, err := s.parkingRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing parking slots: %w", err)
	}
	var available []domain.Parking
	for _, parking := range parkings {
		if !parking.IsOccupied {
			available = append(available, parking)
		}
	}
	if len(available) == 0 {
		return nil, ErrNoAvailableSlots
	}
	return available, nil
}

func (s *ParkingService) GetAllSlots(ctx context.Context, principal string) ([]domain.Parking, error) {
	if _, err := s.requireOwner(ctx, principal); err != nil {
		return nil, err
	}
	parkings, err := s.parkingRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing parking slots: %w", err)
	}
	return parkings, nil
}

func (s *ParkingService) GetParkingSlotByID(ctx context.Context, id string) (*domain.Parking, error) {
	return s.parkingRepo.FindByID(ctx, id)
}

func (s *ParkingService) UpdateParkingSlot(ctx context.Context, id string, payload domain.ParkingPayload, principal string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireOwner(ctx, principal); err != nil {
		return "", err
	}
	if id == "" || payload.ParkingSlot == "" || payload.Price == "" {
		return "", ErrInvalidInput
	}
	if err := validatePrice(payload.Price); err != nil {
		return "", err
	}

	parking, err := s.parkingRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	parking.ParkingSlot = payload.ParkingSlot
	parking.Price = payload.Price
	parking.UpdatedAt = null.TimeFrom(s.now())
	if _, err := s.parkingRepo.Update(ctx, parking); err != nil {
		return "", fmt.Errorf("updating parking slot: %w", err)
	}
	return parking.ID, nil
}

// DeleteParkingSlot removes the slot even if it is currently occupied; a
// pickup against an allocation left dangling by the delete fails NotFound.
func (s *ParkingService) DeleteParkingSlot(ctx context.Context, id string, principal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireOwner(ctx, principal); err != nil {
		return err
	}
	if id == "" {
		return ErrInvalidInput
	}
	return s.parkingRepo.Delete(ctx, id)
}

func (s *ParkingService) notifySlot(parking *domain.Parking, event string) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastSlotStatus(domain.SlotStatusNotification{
		Type:        "slot_status",
		SlotID:      parking.ID,
		ParkingSlot: parking.ParkingSlot,
		IsOccupied:  parking.IsOccupied,
		Event:       event,
		Timestamp:   s.now(),
	})
}
