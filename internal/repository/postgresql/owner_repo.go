package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"
)

type pgOwnerRepository struct {
	db *sql.DB
}

func NewPgOwnerRepository(db *sql.DB) repository.OwnerRepository {
	return &pgOwnerRepository{db: db}
}

// Create inserts the singleton owner row. The guard clause keeps the table
// at most one row even if two initialization calls race.
func (r *pgOwnerRepository) Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	query := `INSERT INTO owners (id, name, principal, created_date, updated_at)
	           SELECT $1, $2, $3, $4, NULL
	           WHERE NOT EXISTS (SELECT 1 FROM owners)`
	result, err := r.db.ExecContext(ctx, query, owner.ID, owner.Name, owner.Principal, owner.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("OwnerRepository.Create: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("OwnerRepository.Create (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrDuplicateEntry
	}
	return owner, nil
}

func (r *pgOwnerRepository) Find(ctx context.Context) (*domain.Owner, error) {
	owner := &domain.Owner{}
	query := `SELECT id, name, principal, created_date, updated_at FROM owners ORDER BY id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&owner.ID, &owner.Name, &owner.Principal, &owner.CreatedDate, &owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("OwnerRepository.Find: %w", err)
	}
	return owner, nil
}

func (r *pgOwnerRepository) Update(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	query := `UPDATE owners SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, owner.Name, owner.UpdatedAt, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("OwnerRepository.Update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("OwnerRepository.Update (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return owner, nil
}
