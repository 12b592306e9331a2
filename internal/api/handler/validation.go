package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/api/middleware"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

// ValidationEngine runs automated scoring and applies human review decisions
type ValidationEngine interface {
	RunAutomated(ctx context.Context, checkInID, actorID uuid.UUID) (*domain.ValidationResult, error)
	ApplyHumanReview(ctx context.Context, checkInID uuid.UUID, approved bool, actorID uuid.UUID, notes string) error
}

// ValidationReader reads stored validation records
type ValidationReader interface {
	Get(ctx context.Context, checkInID uuid.UUID) (*domain.ValidationResult, error)
}

// ValidationHandler handles photo validation requests
type ValidationHandler struct {
	engine ValidationEngine
	reader ValidationReader
	logger *slog.Logger
}

func NewValidationHandler(engine ValidationEngine, reader ValidationReader, logger *slog.Logger) *ValidationHandler {
	return &ValidationHandler{
		engine: engine,
		reader: reader,
		logger: logger,
	}
}

// ReviewRequest body for the review endpoint
type ReviewRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

// Validate POST /v1/checkins/:id/validate - run automated photo validation
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	checkInID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("invalid check-in id"))
	}

	result, err := h.engine.RunAutomated(c.Context(), checkInID, userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"validation": result,
	})
}

// Review POST /v1/checkins/:id/review - apply a supervisor decision
func (h *ValidationHandler) Review(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	checkInID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("invalid check-in id"))
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	if err := h.engine.ApplyHumanReview(c.Context(), checkInID, req.Approved, userID, req.Notes); err != nil {
		return err
	}

	message := "check-in approved"
	if !req.Approved {
		message = "check-in rejected"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// Get GET /v1/checkins/:id/validation - read the stored validation record
func (h *ValidationHandler) Get(c *fiber.Ctx) error {
	checkInID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrBadRequest.WithError(errors.New("invalid check-in id"))
	}

	result, err := h.reader.Get(c.Context(), checkInID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"validation": result,
	})
}
