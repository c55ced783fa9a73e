package repository

import (
	"context"
	"errors"

	"parking_billing/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// OwnerRepository holds at most one record. Find returns ErrNotFound until
// the owner has been initialized.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
	Find(ctx context.Context) (*domain.Owner, error)
	Update(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
}

type ParkingRepository interface {
	Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error)
	FindByID(ctx context.Context, id string) (*domain.Parking, error)
	FindAll(ctx context.Context) ([]domain.Parking, error)
	Update(ctx context.Context, parking *domain.Parking) (*domain.Parking, error)
	Delete(ctx context.Context, id string) error
}

type AllocationRepository interface {
	Create(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error)
	FindByID(ctx context.Context, id string) (*domain.Allocation, error)
	FindAll(ctx context.Context) ([]domain.Allocation, error)
	Update(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error)
}

type ValetRepository interface {
	Create(ctx context.Context, valet *domain.Valet) (*domain.Valet, error)
	FindByID(ctx context.Context, id string) (*domain.Valet, error)
	FindAll(ctx context.Context) ([]domain.Valet, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
