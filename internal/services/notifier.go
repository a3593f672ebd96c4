package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// NotificationEvent is one in-app notification to deliver. Services build
// the event list after the primary write succeeds and hand it to the
// notifier; delivery never affects the outcome of the operation that
// produced it.
type NotificationEvent struct {
	UserID    string
	Type      string
	Title     string
	Message   string
	SessionID string
}

// NotifierInterface defines the interface for best-effort notification dispatch
type NotifierInterface interface {
	Dispatch(events []NotificationEvent)
}

const dispatchTimeout = 10 * time.Second

// Notifier writes notification rows asynchronously. Failures are logged
// and counted, never surfaced to the caller.
type Notifier struct {
	notificationRepo repository.NotificationRepositoryInterface
}

// NewNotifier creates a new notifier
func NewNotifier(notificationRepo repository.NotificationRepositoryInterface) *Notifier {
	return &Notifier{notificationRepo: notificationRepo}
}

// Dispatch drains the event list in the background and returns immediately
func (n *Notifier) Dispatch(events []NotificationEvent) {
	if len(events) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		for _, event := range events {
			err := n.notificationRepo.Create(ctx, &models.Notification{
				UserID:         event.UserID,
				Type:           event.Type,
				Title:          event.Title,
				Message:        event.Message,
				RelatedSession: event.SessionID,
			})
			if err != nil {
				metrics.NotificationDispatchFailures.Inc()
				logger.Error("Failed to dispatch notification",
					zap.String("user_id", event.UserID),
					zap.String("type", event.Type),
					zap.String("session_id", event.SessionID),
					zap.Error(err))
			}
		}
	}()
}

// sessionEvents builds the notification fan-out for a session lifecycle
// event. The mentee is always notified; the mentor is skipped on
// completion (the mentor drove that transition themselves).
func sessionEvents(session *models.Session, eventType, title, message string) []NotificationEvent {
	events := []NotificationEvent{{
		UserID:    session.MenteeID,
		Type:      eventType,
		Title:     title,
		Message:   message,
		SessionID: session.ID,
	}}

	if eventType != models.NotificationSessionCompleted && session.Mentor != nil {
		events = append(events, NotificationEvent{
			UserID:    session.Mentor.UserID,
			Type:      eventType,
			Title:     title,
			Message:   message,
			SessionID: session.ID,
		})
	}
	return events
}
