package domain

import "github.com/google/uuid"

// Notification types emitted by the validation engine
const (
	NotificationCheckInRejected = "checkin_rejected"
	NotificationCheckInApproved = "checkin_approved"
)

// Notification is an outbound message to a check-in owner describing a
// validation decision. Emission is fire-and-forget from the engine's
// perspective; delivery is handled by the notification dispatcher.
type Notification struct {
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	RecipientUserID uuid.UUID `json:"recipient_user_id"`
	CheckInID       uuid.UUID `json:"check_in_id"`
}
