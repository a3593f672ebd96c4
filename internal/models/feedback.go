package models

import "time"

// Feedback is a mentee's one-time rating of a completed session.
// Exactly zero or one row exists per session (UNIQUE constraint) and it
// is immutable once written.
type Feedback struct {
	ID        string    `json:"_id"`
	SessionID string    `json:"sessionId"`
	MenteeID  string    `json:"menteeId"`
	MentorID  string    `json:"mentorId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`

	// Expanded references, populated on reads
	Mentee  *User    `json:"mentee,omitempty"`
	Session *Session `json:"session,omitempty"`
}

// CreateFeedbackRequest rates a completed session
type CreateFeedbackRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required,max=500"`
}

// RatingStats is the aggregate produced by the rating recomputation
type RatingStats struct {
	Average float64
	Count   int
}
