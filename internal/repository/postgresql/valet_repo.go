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

type pgValetRepository struct {
	db *sql.DB
}

func NewPgValetRepository(db *sql.DB) repository.ValetRepository {
	return &pgValetRepository{db: db}
}

func (r *pgValetRepository) Create(ctx context.Context, valet *domain.Valet) (*domain.Valet, error) {
	query := `INSERT INTO valets (id, allocation_id, client_location, created_date, updated_at)
	           VALUES ($1, $2, $3, $4, NULL)`
	_, err := r.db.ExecContext(ctx, query,
		valet.ID, valet.AllocationID, valet.ClientLocation, valet.CreatedDate,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: valet id %q", repository.ErrDuplicateEntry, valet.ID)
		}
		return nil, fmt.Errorf("ValetRepository.Create: %w", err)
	}
	return valet, nil
}

func (r *pgValetRepository) FindByID(ctx context.Context, id string) (*domain.Valet, error) {
	valet := &domain.Valet{}
	query := `SELECT id, allocation_id, client_location, created_date, updated_at
	           FROM valets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&valet.ID, &valet.AllocationID, &valet.ClientLocation, &valet.CreatedDate, &valet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ValetRepository.FindByID: %w", err)
	}
	return valet, nil
}

func (r *pgValetRepository) FindAll(ctx context.Context) ([]domain.Valet, error) {
	query := `SELECT id, allocation_id, client_location, created_date, updated_at
	           FROM valets ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ValetRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var valets []domain.Valet
	for rows.Next() {
		var valet domain.Valet
		if err := rows.Scan(
			&valet.ID, &valet.AllocationID, &valet.ClientLocation, &valet.CreatedDate, &valet.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ValetRepository.FindAll (scanning row): %w", err)
		}
		valets = append(valets, valet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ValetRepository.FindAll (rows error): %w", err)
	}
	return valets, nil
}
