package services

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/schedule"
)

// MentorServiceInterface defines the interface for mentor directory and
// profile operations.
type MentorServiceInterface interface {
	List(ctx context.Context) ([]*models.Mentor, error)
	Search(ctx context.Context, filters models.MentorSearchFilters) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	UpsertProfile(ctx context.Context, principal *models.Principal, req *models.UpsertMentorProfileRequest) (*models.Mentor, error)
	UploadPicture(ctx context.Context, principal *models.Principal, req *models.UploadPictureRequest) (string, error)
}

// AvailabilityServiceInterface defines the interface for availability
// template operations.
type AvailabilityServiceInterface interface {
	GetMine(ctx context.Context, principal *models.Principal) (*models.Availability, error)
	UpdateMine(ctx context.Context, principal *models.Principal, req *models.UpdateAvailabilityRequest) (*models.Availability, error)
	GetForMentor(ctx context.Context, mentorID string) (*models.Availability, error)
	ResolveSlots(ctx context.Context, mentorID, date string) ([]schedule.Slot, error)
}

// SessionServiceInterface defines the interface for session booking operations
type SessionServiceInterface interface {
	Create(ctx context.Context, principal *models.Principal, req *models.CreateSessionRequest) (*models.Session, error)
	ListForMentee(ctx context.Context, principal *models.Principal) ([]*models.Session, error)
	ListForMentor(ctx context.Context, principal *models.Principal) ([]*models.Session, error)
}

// LifecycleServiceInterface defines the interface for session status transitions
type LifecycleServiceInterface interface {
	UpdateStatus(ctx context.Context, principal *models.Principal, sessionID string, status models.SessionStatus) (*models.Session, error)
	Cancel(ctx context.Context, principal *models.Principal, sessionID string) (*models.Session, error)
}

// FeedbackServiceInterface defines the interface for feedback operations
type FeedbackServiceInterface interface {
	Create(ctx context.Context, principal *models.Principal, req *models.CreateFeedbackRequest) (*models.Feedback, error)
	ListForMentor(ctx context.Context, mentorID string) ([]*models.Feedback, error)
	ListForMentee(ctx context.Context, principal *models.Principal) ([]*models.Feedback, error)
	GetBySession(ctx context.Context, principal *models.Principal, sessionID string) (*models.Feedback, error)
}

// NotificationServiceInterface defines the interface for the notification feed
type NotificationServiceInterface interface {
	List(ctx context.Context, principal *models.Principal) ([]*models.Notification, error)
	MarkRead(ctx context.Context, principal *models.Principal, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, principal *models.Principal) (int64, error)
	UnreadCount(ctx context.Context, principal *models.Principal) (int, error)
}

// Ensure services implement their interfaces
var _ MentorServiceInterface = (*MentorService)(nil)
var _ AvailabilityServiceInterface = (*AvailabilityService)(nil)
var _ SessionServiceInterface = (*SessionService)(nil)
var _ LifecycleServiceInterface = (*LifecycleService)(nil)
var _ FeedbackServiceInterface = (*FeedbackService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
var _ NotifierInterface = (*Notifier)(nil)
