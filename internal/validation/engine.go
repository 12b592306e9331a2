package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

// defaultRejectNotes substitutes for an empty rejection note on human review
const defaultRejectNotes = "rejected by supervisor"

// CheckInReader resolves check-ins for validation
type CheckInReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error)
}

// RecordStore persists validation results keyed 1:1 by check-in ID.
// Set is an upsert with last-write-wins semantics; the engine assumes no
// transactional guarantees.
type RecordStore interface {
	Get(ctx context.Context, checkInID uuid.UUID) (*domain.ValidationResult, error)
	Set(ctx context.Context, result *domain.ValidationResult) error
}

// Notifier emits a notification to a check-in owner. Emission is
// fire-and-forget: the engine logs delivery errors but never surfaces them.
type Notifier interface {
	Emit(ctx context.Context, n domain.Notification) error
}

// Engine runs the photo validation lifecycle: automated scoring and
// disposition, persistence, notifications, and human overrides. Each call
// is an independent unit of work; the engine holds no mutable state and
// concurrent runs need no coordination.
type Engine struct {
	checkIns  CheckInReader
	records   RecordStore
	annotator annotation.Annotator
	notifier  Notifier
	cfg       Config
	logger    *slog.Logger
}

// NewEngine creates a validation engine
func NewEngine(
	checkIns CheckInReader,
	records RecordStore,
	annotator annotation.Annotator,
	notifier Notifier,
	cfg Config,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		checkIns:  checkIns,
		records:   records,
		annotator: annotator,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// RunAutomated validates a check-in photo end to end: annotate, extract
// signals, aggregate, classify, persist, and notify the owner on rejection.
//
// Input and precondition errors (check-in missing, no photo) surface before
// any annotation call. An annotation failure is absorbed into a degraded
// needs_review result carrying a diagnostic, so every run that passes the
// preconditions yields a terminal result. A persistence failure propagates:
// a decision that was never durably recorded counts as a failed operation.
func (e *Engine) RunAutomated(ctx context.Context, checkInID, actorID uuid.UUID) (*domain.ValidationResult, error) {
	checkIn, err := e.checkIns.GetByID(ctx, checkInID)
	if err != nil {
		return nil, err
	}

	if !checkIn.HasPhoto() {
		return nil, domain.ErrMissingPhoto
	}

	start := time.Now()

	result := &domain.ValidationResult{
		CheckInID:   checkInID,
		TriggeredBy: actorID,
		Labels:      []domain.Label{},
		Logos:       []domain.Logo{},
		Colors:      []domain.ColorSwatch{},
	}

	payload, annErr := e.annotator.Annotate(ctx, annotation.ImageRef{
		Bucket: checkIn.PhotoBucket,
		Path:   checkIn.PhotoPath,
	})

	if annErr != nil {
		// Degraded path: the photo lands in front of a human instead
		result.Status = domain.StatusNeedsReview
		result.Error = fmt.Sprintf("annotation failed: %v", annErr)

		e.logger.Warn("annotation failed, deferring to human review",
			slog.String("check_in_id", checkInID.String()),
			slog.Any("error", annErr),
		)
	} else {
		detections := e.extract(payload)
		aggregated := Aggregate(detections.Confidences(), e.cfg.Weights)
		disposition := Classify(detections, aggregated, e.cfg.Thresholds)

		result.Status = disposition.Status
		result.Confidence = aggregated
		result.Person = categoryResult(detections.Person)
		result.Uniform = categoryResult(detections.Uniform)
		result.Location = categoryResult(detections.Location)
		result.Logo = categoryResult(detections.Logo)
		result.BrandColor = categoryResult(detections.BrandColor)
		result.Labels = copyLabels(payload.Labels)
		result.Logos = copyLogos(payload.Logos)
		result.Colors = copyColors(payload.Colors)

		if disposition.RejectionReason != "" {
			reason := disposition.RejectionReason
			result.RejectionReason = &reason
		}
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	if err := e.records.Set(ctx, result); err != nil {
		return nil, fmt.Errorf("persist validation for check-in %s: %w", checkInID, err)
	}

	if result.Status == domain.StatusRejected {
		reason := ""
		if result.RejectionReason != nil {
			reason = *result.RejectionReason
		}
		e.notify(ctx, domain.Notification{
			Type:            domain.NotificationCheckInRejected,
			Title:           "Check-in photo rejected",
			Message:         reason,
			RecipientUserID: checkIn.UserID,
			CheckInID:       checkInID,
		})
	}

	return result, nil
}

// ApplyHumanReview records a reviewer's decision over a check-in. The call
// unconditionally overwrites the review fields: a second call simply
// re-decides. The automated scoring fields of an existing record are kept
// unchanged for audit. The owner is always notified of the decision.
func (e *Engine) ApplyHumanReview(ctx context.Context, checkInID uuid.UUID, approved bool, actorID uuid.UUID, notes string) error {
	checkIn, err := e.checkIns.GetByID(ctx, checkInID)
	if err != nil {
		return err
	}

	result, err := e.records.Get(ctx, checkInID)
	if errors.Is(err, domain.ErrValidationNotFound) {
		// Review ahead of any automated run still produces a record
		result = &domain.ValidationResult{
			CheckInID: checkInID,
			Labels:    []domain.Label{},
			Logos:     []domain.Logo{},
			Colors:    []domain.ColorSwatch{},
		}
	} else if err != nil {
		return fmt.Errorf("load validation for check-in %s: %w", checkInID, err)
	}

	now := time.Now().UTC()
	result.ReviewedBy = &actorID
	result.ReviewedAt = &now

	if approved {
		result.Status = domain.StatusApproved
		result.RejectionReason = nil
		if notes != "" {
			result.ReviewNotes = &notes
		} else {
			result.ReviewNotes = nil
		}
	} else {
		if notes == "" {
			notes = defaultRejectNotes
		}
		result.Status = domain.StatusRejected
		result.RejectionReason = &notes
		result.ReviewNotes = &notes
	}

	if err := e.records.Set(ctx, result); err != nil {
		return fmt.Errorf("persist review for check-in %s: %w", checkInID, err)
	}

	notification := domain.Notification{
		RecipientUserID: checkIn.UserID,
		CheckInID:       checkInID,
	}
	if approved {
		notification.Type = domain.NotificationCheckInApproved
		notification.Title = "Check-in approved"
		notification.Message = "Your check-in photo was approved by a supervisor"
	} else {
		notification.Type = domain.NotificationCheckInRejected
		notification.Title = "Check-in rejected"
		notification.Message = notes
	}
	e.notify(ctx, notification)

	return nil
}

// extract runs all five category extractors over the annotation payload
func (e *Engine) extract(payload *annotation.Payload) Detections {
	labels := LabelEntries(payload.Labels)
	logos := LogoEntries(payload.Logos)

	return Detections{
		Person:     DetectCategory(labels, e.cfg.Vocabulary.Person),
		Uniform:    DetectCategory(labels, e.cfg.Vocabulary.Uniform),
		Location:   DetectCategory(labels, e.cfg.Vocabulary.Location),
		Logo:       DetectCategory(append(logos, labels...), e.cfg.Vocabulary.Logo),
		BrandColor: DetectBrandColor(payload.Colors, e.cfg.BrandColor),
	}
}

func (e *Engine) notify(ctx context.Context, n domain.Notification) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Emit(ctx, n); err != nil {
		e.logger.Warn("failed to emit notification",
			slog.String("type", n.Type),
			slog.String("check_in_id", n.CheckInID.String()),
			slog.Any("error", err),
		)
	}
}

func categoryResult(d CategoryDetection) domain.CategoryResult {
	return domain.CategoryResult{Detected: d.Detected, Confidence: d.Confidence}
}

func copyLabels(labels []annotation.Label) []domain.Label {
	out := make([]domain.Label, 0, len(labels))
	for _, l := range labels {
		out = append(out, domain.Label{Name: l.Name, Confidence: l.Confidence})
	}
	return out
}

func copyLogos(logos []annotation.Logo) []domain.Logo {
	out := make([]domain.Logo, 0, len(logos))
	for _, l := range logos {
		out = append(out, domain.Logo{Name: l.Name, Confidence: l.Confidence})
	}
	return out
}

func copyColors(colors []annotation.ColorSwatch) []domain.ColorSwatch {
	out := make([]domain.ColorSwatch, 0, len(colors))
	for _, c := range colors {
		out = append(out, domain.ColorSwatch{Red: c.Red, Green: c.Green, Blue: c.Blue, Dominance: c.Dominance})
	}
	return out
}
