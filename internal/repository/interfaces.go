package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

// UserRepositoryInterface defines operations for user data access
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByTokenHash(ctx context.Context, hash string) (*domain.User, error)
}

// CheckInRepositoryInterface defines operations for check-in data access
type CheckInRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error)
}

// ValidationRepositoryInterface defines operations for validation records
type ValidationRepositoryInterface interface {
	Get(ctx context.Context, checkInID uuid.UUID) (*domain.ValidationResult, error)
	Set(ctx context.Context, result *domain.ValidationResult) error
}
