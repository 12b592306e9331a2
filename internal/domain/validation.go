package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationStatus is the disposition of a check-in photo validation.
// The automated engine produces auto_approved, rejected or needs_review;
// a human reviewer may later supersede with approved or rejected.
type ValidationStatus string

const (
	StatusAutoApproved ValidationStatus = "auto_approved"
	StatusRejected     ValidationStatus = "rejected"
	StatusNeedsReview  ValidationStatus = "needs_review"
	StatusApproved     ValidationStatus = "approved"
)

// IsRejecting reports whether the status carries a rejection reason
func (s ValidationStatus) IsRejecting() bool {
	return s == StatusRejected
}

// Label is a detected semantic category with its confidence in [0,1]
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Logo is a detected brand mark with its confidence in [0,1]
type Logo struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ColorSwatch is a dominant color of the image with its dominance in [0,1]
type ColorSwatch struct {
	Red       int     `json:"red"`
	Green     int     `json:"green"`
	Blue      int     `json:"blue"`
	Dominance float64 `json:"dominance"`
}

// CategoryResult records whether a signal category was detected and
// with what confidence. Confidence > 0 iff Detected.
type CategoryResult struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
}

// ValidationResult is the persisted outcome of validating a check-in photo.
// Automated scoring fields are written once by the engine and kept unchanged
// for audit; a human review only overwrites Status, RejectionReason and the
// ReviewedBy/ReviewedAt/ReviewNotes fields.
type ValidationResult struct {
	CheckInID  uuid.UUID        `json:"check_in_id"`
	Status     ValidationStatus `json:"status"`
	Confidence float64          `json:"confidence"`

	Person     CategoryResult `json:"person"`
	Uniform    CategoryResult `json:"uniform"`
	Location   CategoryResult `json:"location"`
	Logo       CategoryResult `json:"logo"`
	BrandColor CategoryResult `json:"brand_color"`

	// Verbatim copy of the annotation payload, retained for audit/replay
	Labels []Label       `json:"labels"`
	Logos  []Logo        `json:"logos"`
	Colors []ColorSwatch `json:"colors"`

	RejectionReason  *string   `json:"rejection_reason,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	Error            string    `json:"error,omitempty"`
	TriggeredBy      uuid.UUID `json:"triggered_by"`

	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `json:"review_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
