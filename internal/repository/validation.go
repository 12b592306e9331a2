package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

// ValidationRepository persists validation results keyed 1:1 by check-in ID.
// Set is an unconditional upsert: the last writer wins, with no version
// check between concurrent automated and manual writers.
type ValidationRepository struct {
	pool PgxPool
}

func NewValidationRepository(pool PgxPool) *ValidationRepository {
	return &ValidationRepository{pool: pool}
}

func (r *ValidationRepository) Get(ctx context.Context, checkInID uuid.UUID) (*domain.ValidationResult, error) {
	query := `
		SELECT check_in_id, status, confidence,
		       person_detected, person_confidence,
		       uniform_detected, uniform_confidence,
		       location_detected, location_confidence,
		       logo_detected, logo_confidence,
		       brand_color_detected, brand_color_confidence,
		       labels, logos, colors,
		       rejection_reason, processing_time_ms, error,
		       triggered_by, reviewed_by, reviewed_at, review_notes,
		       created_at, updated_at
		FROM checkin_validations
		WHERE check_in_id = $1
	`

	var result domain.ValidationResult
	var labelsJSON, logosJSON, colorsJSON []byte
	var triggeredBy *uuid.UUID

	err := r.pool.QueryRow(ctx, query, checkInID).Scan(
		&result.CheckInID,
		&result.Status,
		&result.Confidence,
		&result.Person.Detected, &result.Person.Confidence,
		&result.Uniform.Detected, &result.Uniform.Confidence,
		&result.Location.Detected, &result.Location.Confidence,
		&result.Logo.Detected, &result.Logo.Confidence,
		&result.BrandColor.Detected, &result.BrandColor.Confidence,
		&labelsJSON, &logosJSON, &colorsJSON,
		&result.RejectionReason,
		&result.ProcessingTimeMs,
		&result.Error,
		&triggeredBy,
		&result.ReviewedBy,
		&result.ReviewedAt,
		&result.ReviewNotes,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrValidationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get validation: %w", err)
	}

	if triggeredBy != nil {
		result.TriggeredBy = *triggeredBy
	}

	if err := json.Unmarshal(labelsJSON, &result.Labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}
	if err := json.Unmarshal(logosJSON, &result.Logos); err != nil {
		return nil, fmt.Errorf("unmarshal logos: %w", err)
	}
	if err := json.Unmarshal(colorsJSON, &result.Colors); err != nil {
		return nil, fmt.Errorf("unmarshal colors: %w", err)
	}

	return &result, nil
}

func (r *ValidationRepository) Set(ctx context.Context, result *domain.ValidationResult) error {
	query := `
		INSERT INTO checkin_validations (
			check_in_id, status, confidence,
			person_detected, person_confidence,
			uniform_detected, uniform_confidence,
			location_detected, location_confidence,
			logo_detected, logo_confidence,
			brand_color_detected, brand_color_confidence,
			labels, logos, colors,
			rejection_reason, processing_time_ms, error,
			triggered_by, reviewed_by, reviewed_at, review_notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
		ON CONFLICT (check_in_id) DO UPDATE SET
			status = EXCLUDED.status,
			confidence = EXCLUDED.confidence,
			person_detected = EXCLUDED.person_detected,
			person_confidence = EXCLUDED.person_confidence,
			uniform_detected = EXCLUDED.uniform_detected,
			uniform_confidence = EXCLUDED.uniform_confidence,
			location_detected = EXCLUDED.location_detected,
			location_confidence = EXCLUDED.location_confidence,
			logo_detected = EXCLUDED.logo_detected,
			logo_confidence = EXCLUDED.logo_confidence,
			brand_color_detected = EXCLUDED.brand_color_detected,
			brand_color_confidence = EXCLUDED.brand_color_confidence,
			labels = EXCLUDED.labels,
			logos = EXCLUDED.logos,
			colors = EXCLUDED.colors,
			rejection_reason = EXCLUDED.rejection_reason,
			processing_time_ms = EXCLUDED.processing_time_ms,
			error = EXCLUDED.error,
			triggered_by = EXCLUDED.triggered_by,
			reviewed_by = EXCLUDED.reviewed_by,
			reviewed_at = EXCLUDED.reviewed_at,
			review_notes = EXCLUDED.review_notes,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	labelsJSON, err := json.Marshal(result.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}
	logosJSON, err := json.Marshal(result.Logos)
	if err != nil {
		return fmt.Errorf("marshal logos: %w", err)
	}
	colorsJSON, err := json.Marshal(result.Colors)
	if err != nil {
		return fmt.Errorf("marshal colors: %w", err)
	}

	var triggeredBy *uuid.UUID
	if result.TriggeredBy != uuid.Nil {
		triggeredBy = &result.TriggeredBy
	}

	err = r.pool.QueryRow(ctx, query,
		result.CheckInID,
		result.Status,
		result.Confidence,
		result.Person.Detected, result.Person.Confidence,
		result.Uniform.Detected, result.Uniform.Confidence,
		result.Location.Detected, result.Location.Confidence,
		result.Logo.Detected, result.Logo.Confidence,
		result.BrandColor.Detected, result.BrandColor.Confidence,
		labelsJSON, logosJSON, colorsJSON,
		result.RejectionReason,
		result.ProcessingTimeMs,
		result.Error,
		triggeredBy,
		result.ReviewedBy,
		result.ReviewedAt,
		result.ReviewNotes,
	).Scan(&result.CreatedAt, &result.UpdatedAt)

	if err != nil {
		return fmt.Errorf("set validation: %w", err)
	}

	return nil
}
