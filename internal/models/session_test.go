package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatus_TransitionGraph(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))

	// pending can never jump straight to completed
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))

	// terminal states have no outgoing edges
	for _, terminal := range []SessionStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range []SessionStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(target), "%s -> %s must be illegal", terminal, target)
		}
	}

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestSessionStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, SessionStatus("archived").IsValid())
}

func TestSessionPrice(t *testing.T) {
	assert.Equal(t, 67.5, SessionPrice(45, 90))
	assert.Equal(t, 45.0, SessionPrice(45, 60))
	assert.Equal(t, 22.5, SessionPrice(45, 30))
	assert.Equal(t, 0.0, SessionPrice(0, 120))
}

func TestSortSessions(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	pendingSoon := &Session{ID: "pending-soon", Status: StatusPending, Date: now.Add(1 * day)}
	pendingLater := &Session{ID: "pending-later", Status: StatusPending, Date: now.Add(5 * day)}
	confirmed := &Session{ID: "confirmed", Status: StatusConfirmed, Date: now.Add(2 * day)}
	completedOld := &Session{ID: "completed-old", Status: StatusCompleted, Date: now.Add(-10 * day)}
	completedRecent := &Session{ID: "completed-recent", Status: StatusCompleted, Date: now.Add(-1 * day)}
	cancelled := &Session{ID: "cancelled", Status: StatusCancelled, Date: now.Add(-3 * day)}

	sessions := []*Session{cancelled, completedOld, pendingLater, confirmed, completedRecent, pendingSoon}
	SortSessions(sessions, now)

	got := make([]string, len(sessions))
	for i, s := range sessions {
		got[i] = s.ID
	}

	// Pending first (nearest future date first), then confirmed, then
	// completed most-recent-first, cancelled last.
	assert.Equal(t, []string{
		"pending-soon",
		"pending-later",
		"confirmed",
		"completed-recent",
		"completed-old",
		"cancelled",
	}, got)
}
