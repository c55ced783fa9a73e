// Package memory implements the entity store as ordered in-memory maps, one
// per collection, keyed by opaque string IDs. Listings iterate keys in sorted
// order so callers observe a stable sequence. A single RWMutex guards the
// whole store; mutating operations are additionally serialized end to end by
// the service layer.
package memory

import (
	"context"
	"sort"
	"sync"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"
)

type Store struct {
	mu          sync.RWMutex
	owners      map[string]domain.Owner
	parkings    map[string]domain.Parking
	allocations map[string]domain.Allocation
	valets      map[string]domain.Valet
	users       map[string]domain.User
}

func NewStore() *Store {
	return &Store{
		owners:      map[string]domain.Owner{},
		parkings:    map[string]domain.Parking{},
		allocations: map[string]domain.Allocation{},
		valets:      map[string]domain.Valet{},
		users:       map[string]domain.User{},
	}
}

func (s *Store) Owners() repository.OwnerRepository           { return &ownerRepo{s} }
func (s *Store) Parkings() repository.ParkingRepository       { return &parkingRepo{s} }
func (s *Store) Allocations() repository.AllocationRepository { return &allocationRepo{s} }
func (s *Store) Valets() repository.ValetRepository           { return &valetRepo{s} }
func (s *Store) Users() repository.UserRepository             { return &userRepo{s} }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Owner ---

type ownerRepo struct{ s *Store }

func (r *ownerRepo) Create(_ context.Context, owner *domain.Owner) (*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.owners) > 0 {
		return nil, repository.ErrDuplicateEntry
	}
	r.s.owners[owner.ID] = *owner
	return owner, nil
}

func (r *ownerRepo) Find(_ context.Context) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.owners) {
		owner := r.s.owners[id]
		return &owner, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ownerRepo) Update(_ context.Context, owner *domain.Owner) (*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.owners[owner.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.owners[owner.ID] = *owner
	return owner, nil
}

// --- Parking ---

type parkingRepo struct{ s *Store }

func (r *parkingRepo) Create(_ context.Context, parking *domain.Parking) (*domain.Parking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parkings[parking.ID]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	r.s.parkings[parking.ID] = *parking
	return parking, nil
}

func (r *parkingRepo) FindByID(_ context.Context, id string) (*domain.Parking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	parking, ok := r.s.parkings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &parking, nil
}

func (r *parkingRepo) FindAll(_ context.Context) ([]domain.Parking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	parkings := make([]domain.Parking, 0, len(r.s.parkings))
	for _, id := range sortedKeys(r.s.parkings) {
		parkings = append(parkings, r.s.parkings[id])
	}
	return parkings, nil
}

func (r *parkingRepo) Update(_ context.Context, parking *domain.Parking) (*domain.Parking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parkings[parking.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.parkings[parking.ID] = *parking
	return parking, nil
}

func (r *parkingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parkings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.parkings, id)
	return nil
}

// --- Allocation ---

type allocationRepo struct{ s *Store }

func (r *allocationRepo) Create(_ context.Context, allocation *domain.Allocation) (*domain.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.allocations[allocation.ID]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	r.s.allocations[allocation.ID] = *allocation
	return allocation, nil
}

func (r *allocationRepo) FindByID(_ context.Context, id string) (*domain.Allocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	allocation, ok := r.s.allocations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &allocation, nil
}

func (r *allocationRepo) FindAll(_ context.Context) ([]domain.Allocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	allocations := make([]domain.Allocation, 0, len(r.s.allocations))
	for _, id := range sortedKeys(r.s.allocations) {
		allocations = append(allocations, r.s.allocations[id])
	}
	return allocations, nil
}

func (r *allocationRepo) Update(_ context.Context, allocation *domain.Allocation) (*domain.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.allocations[allocation.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.allocations[allocation.ID] = *allocation
	return allocation, nil
}

// --- Valet ---

type valetRepo struct{ s *Store }

func (r *valetRepo) Create(_ context.Context, valet *domain.Valet) (*domain.Valet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.valets[valet.ID]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	r.s.valets[valet.ID] = *valet
	return valet, nil
}

func (r *valetRepo) FindByID(_ context.Context, id string) (*domain.Valet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	valet, ok := r.s.valets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &valet, nil
}

func (r *valetRepo) FindAll(_ context.Context) ([]domain.Valet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	valets := make([]domain.Valet, 0, len(r.s.valets))
	for _, id := range sortedKeys(r.s.valets) {
		valets = append(valets, r.s.valets[id])
	}
	return valets, nil
}

// --- User ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return nil, repository.ErrDuplicateEntry
		}
	}
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.users) {
		if r.s.users[id].Username == username {
			user := r.s.users[id]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}
