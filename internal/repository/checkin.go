package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

type CheckInRepository struct {
	pool PgxPool
}

func NewCheckInRepository(pool PgxPool) *CheckInRepository {
	return &CheckInRepository{pool: pool}
}

func (r *CheckInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	query := `
		SELECT id, user_id, type, COALESCE(photo_bucket, ''), COALESCE(photo_path, ''), created_at
		FROM checkins
		WHERE id = $1
	`

	var checkIn domain.CheckIn
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&checkIn.ID,
		&checkIn.UserID,
		&checkIn.Type,
		&checkIn.PhotoBucket,
		&checkIn.PhotoPath,
		&checkIn.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCheckInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in by id: %w", err)
	}

	return &checkIn, nil
}
