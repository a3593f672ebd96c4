package models

import "time"

// Notification types emitted by the booking and feedback flows
const (
	NotificationSessionCreated   = "session_created"
	NotificationSessionConfirmed = "session_confirmed"
	NotificationSessionCancelled = "session_cancelled"
	NotificationSessionCompleted = "session_completed"
	NotificationFeedbackReceived = "feedback_received"
)

// Notification is a best-effort in-app message. Writes never fail the
// operation that triggered them; delivery beyond row insertion is out of
// scope for this service.
type Notification struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"userId"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RelatedSession string    `json:"relatedSession,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
