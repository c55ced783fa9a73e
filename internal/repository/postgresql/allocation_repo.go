package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"

	"github.com/lib/pq"
)

type pgAllocationRepository struct {
	db *sql.DB
}

func NewPgAllocationRepository(db *sql.DB) repository.AllocationRepository {
	return &pgAllocationRepository{db: db}
}

func (r *pgAllocationRepository) Create(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error) {
	query := `INSERT INTO allocations (id, parking_id, client, car_model, status, created_date, completed_at)
	           VALUES ($1, $2, $3, $4, $5, $6, NULL)`
	_, err := r.db.ExecContext(ctx, query,
		allocation.ID, allocation.ParkingID, allocation.Client, allocation.CarModel,
		allocation.Status, allocation.CreatedDate,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: allocation id %q", repository.ErrDuplicateEntry, allocation.ID)
		}
		return nil, fmt.Errorf("AllocationRepository.Create: %w", err)
	}
	return allocation, nil
}

func (r *pgAllocationRepository) FindByID(ctx context.Context, id string) (*domain.Allocation, error) {
	allocation := &domain.Allocation{}
	query := `SELECT id, parking_id, client, car_model, status, created_date, completed_at
	           FROM allocations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&allocation.ID, &allocation.ParkingID, &allocation.Client, &allocation.CarModel,
		&allocation.Status, &allocation.CreatedDate, &allocation.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("AllocationRepository.FindByID: %w", err)
	}
	return allocation, nil
}

func (r *pgAllocationRepository) FindAll(ctx context.Context) ([]domain.Allocation, error) {
	query := `SELECT id, parking_id, client, car_model, status, created_date, completed_at
	           FROM allocations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("AllocationRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		var allocation domain.Allocation
		if err := rows.Scan(
			&allocation.ID, &allocation.ParkingID, &allocation.Client, &allocation.CarModel,
			&allocation.Status, &allocation.CreatedDate, &allocation.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("AllocationRepository.FindAll (scanning row): %w", err)
		}
		allocations = append(allocations, allocation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("AllocationRepository.FindAll (rows error): %w", err)
	}
	return allocations, nil
}

func (r *pgAllocationRepository) Update(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error) {
	query := `UPDATE allocations
	           SET parking_id = $1, client = $2, car_model = $3, status = $4, completed_at = $5
	           WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		allocation.ParkingID, allocation.Client, allocation.CarModel,
		allocation.Status, allocation.CompletedAt, allocation.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("AllocationRepository.Update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("AllocationRepository.Update (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return allocation, nil
}
