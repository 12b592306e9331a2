package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckInType is the kind of attendance event an employee submitted
type CheckInType string

const (
	CheckInEntry  CheckInType = "entry"
	CheckInMeal   CheckInType = "meal"
	CheckInReturn CheckInType = "return"
	CheckInExit   CheckInType = "exit"
)

// CheckIn is a single timestamped attendance event, optionally carrying
// a photo stored in an object bucket
type CheckIn struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Type        CheckInType `json:"type"`
	PhotoBucket string      `json:"photo_bucket,omitempty"`
	PhotoPath   string      `json:"photo_path,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// HasPhoto reports whether the check-in carries a resolvable photo reference
func (c *CheckIn) HasPhoto() bool {
	return c.PhotoBucket != "" && c.PhotoPath != ""
}
