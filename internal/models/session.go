package models

import (
	"sort"
	"time"
)

// SessionStatus is the session lifecycle state
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusConfirmed SessionStatus = "confirmed"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// legalTransitions is the lifecycle graph. Completed and cancelled are
// terminal; in particular pending can never jump straight to completed.
var legalTransitions = map[SessionStatus][]SessionStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// statusPriority drives the listing order: pending < confirmed <
// completed < cancelled.
var statusPriority = map[SessionStatus]int{
	StatusPending:   1,
	StatusConfirmed: 2,
	StatusCompleted: 3,
	StatusCancelled: 4,
}

// IsValid reports whether s is a known status value
func (s SessionStatus) IsValid() bool {
	_, ok := statusPriority[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether s -> target is on the legal graph
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Session is one scheduled, priced mentoring engagement. Price is frozen
// at creation time and never recomputed; MeetingLink is set on
// confirmation and never cleared afterwards; rows are never deleted
// (cancellation is a terminal status, not removal).
type Session struct {
	ID          string        `json:"_id"`
	MentorID    string        `json:"mentorId"`
	MenteeID    string        `json:"menteeId"`
	Date        time.Time     `json:"date"`
	Duration    int           `json:"duration"`
	Topic       string        `json:"topic"`
	Description string        `json:"description,omitempty"`
	Status      SessionStatus `json:"status"`
	MeetingLink string        `json:"meetingLink,omitempty"`
	Price       float64       `json:"price"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Expanded references, populated on reads
	Mentor *Mentor `json:"mentor,omitempty"`
	Mentee *User   `json:"mentee,omitempty"`
}

// SessionPrice derives the frozen booking price from the mentor's hourly
// rate at creation time.
func SessionPrice(hourlyRate float64, durationMinutes int) float64 {
	return hourlyRate * (float64(durationMinutes) / 60.0)
}

// SortSessions orders sessions for listing views: status priority first,
// then within equal status nearest-first for future pairs and
// most-recent-first otherwise.
func SortSessions(sessions []*Session, now time.Time) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]

		pa, pb := statusPriority[a.Status], statusPriority[b.Status]
		if pa != pb {
			return pa < pb
		}

		if a.Date.After(now) && b.Date.After(now) {
			// Both future: nearest first
			return a.Date.Before(b.Date)
		}
		// Otherwise: most recent first
		return b.Date.Before(a.Date)
	})
}

// CreateSessionRequest books a new session against a mentor
type CreateSessionRequest struct {
	MentorID    string    `json:"mentorId" binding:"required"`
	Date        time.Time `json:"date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Duration    int       `json:"duration" binding:"required,min=30,max=240"`
	Topic       string    `json:"topic" binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
}

// UpdateSessionStatusRequest drives the mentor-only status transition path
type UpdateSessionStatusRequest struct {
	Status SessionStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}
