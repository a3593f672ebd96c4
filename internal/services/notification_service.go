package services

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// notificationPageSize caps the listing; older entries age out of view
const notificationPageSize = 50

// NotificationService exposes a user's in-app notification feed
type NotificationService struct {
	notificationRepo repository.NotificationRepositoryInterface
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, principal *models.Principal) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, principal.UserID, notificationPageSize)
}

// MarkRead flags one of the caller's notifications as read. A foreign or
// unknown id is reported as not found, never as forbidden, so ids cannot
// be probed.
func (s *NotificationService) MarkRead(ctx context.Context, principal *models.Principal, id string) (*models.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(ctx, id, principal.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Notificación no encontrada")
		}
		return nil, err
	}
	return notification, nil
}

// MarkAllRead flags every unread notification of the caller as read
func (s *NotificationService) MarkAllRead(ctx context.Context, principal *models.Principal) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, principal.UserID)
}

// UnreadCount returns the caller's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, principal *models.Principal) (int, error) {
	return s.notificationRepo.CountUnread(ctx, principal.UserID)
}
