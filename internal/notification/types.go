package notification

import (
	"time"

	"github.com/google/uuid"
)

// QueuedNotification is a row in the notifications outbox. Emit writes a
// pending row; the Dispatcher drains it out of band.
type QueuedNotification struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Payload     []byte     `json:"payload"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	Status      string     `json:"status"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventPayload is the JSON body POSTed to the notification endpoint.
type EventPayload struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
