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

type pgParkingRepository struct {
	db *sql.DB
}

func NewPgParkingRepository(db *sql.DB) repository.ParkingRepository {
	return &pgParkingRepository{db: db}
}

func (r *pgParkingRepository) Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error) {
	query := `INSERT INTO parkings (id, parking_slot, is_occupied, price, created_date, updated_at)
	           VALUES ($1, $2, $3, $4, $5, NULL)`
	_, err := r.db.ExecContext(ctx, query,
		parking.ID, parking.ParkingSlot, parking.IsOccupied, parking.Price, parking.CreatedDate,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: parking slot id %q", repository.ErrDuplicateEntry, parking.ID)
		}
		return nil, fmt.Errorf("ParkingRepository.Create: %w", err)
	}
	return parking, nil
}

func (r *pgParkingRepository) FindByID(ctx context.Context, id string) (*domain.Parking, error) {
	parking := &domain.Parking{}
	query := `SELECT id, parking_slot, is_occupied, price, created_date, updated_at
	           FROM parkings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&parking.ID, &parking.ParkingSlot, &parking.IsOccupied, &parking.Price,
		&parking.CreatedDate, &parking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingRepository.FindByID: %w", err)
	}
	return parking, nil
}

func (r *pgParkingRepository) FindAll(ctx context.Context) ([]domain.Parking, error) {
	query := `SELECT id, parking_slot, is_occupied, price, created_date, updated_at
	           FROM parkings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var parkings []domain.Parking
	for rows.Next() {
		var parking domain.Parking
		if err := rows.Scan(
			&parking.ID, &parking.ParkingSlot, &parking.IsOccupied, &parking.Price,
			&parking.CreatedDate, &parking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ParkingRepository.FindAll (scanning row): %w", err)
		}
		parkings = append(parkings, parking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll (rows error): %w", err)
	}
	return parkings, nil
}

func (r *pgParkingRepository) Update(ctx context.Context, parking *domain.Parking) (*domain.Parking, error) {
	query := `UPDATE parkings
	           SET parking_slot = $1, is_occupied = $2, price = $3, updated_at = $4
	           WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		parking.ParkingSlot, parking.IsOccupied, parking.Price, parking.UpdatedAt, parking.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.Update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.Update (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return parking, nil
}

func (r *pgParkingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parkings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ParkingRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
