package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// MockMentorRepository is a mock implementation of MentorRepositoryInterface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) GetAll(ctx context.Context) ([]*models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByUserID(ctx context.Context, userID string) (*models.Mentor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Search(ctx context.Context, filters models.MentorSearchFilters) ([]*models.Mentor, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) Update(ctx context.Context, mentor *models.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) UpdateRating(ctx context.Context, mentorID string, rating float64, reviewCount int) error {
	args := m.Called(ctx, mentorID, rating, reviewCount)
	return args.Error(0)
}

func (m *MockMentorRepository) UpdatePicture(ctx context.Context, mentorID, pictureURL string) error {
	args := m.Called(ctx, mentorID, pictureURL)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Ensure(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAvailabilityRepository is a mock implementation of AvailabilityRepositoryInterface
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) GetByMentorID(ctx context.Context, mentorID string) (*models.Availability, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) GetOrCreate(ctx context.Context, mentorID string) (*models.Availability, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, mentorID string, timeZone *string, weekly *models.WeeklySlots) (*models.Availability, error) {
	args := m.Called(ctx, mentorID, timeZone, weekly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepositoryInterface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Session, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByMentor(ctx context.Context, mentorID string) ([]*models.Session, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionRepository) UpdateStatus(ctx context.Context, id string, status models.SessionStatus, meetingLink string) (*models.Session, error) {
	args := m.Called(ctx, id, status, meetingLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// MockFeedbackRepository is a mock implementation of FeedbackRepositoryInterface
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Feedback, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByMentor(ctx context.Context, mentorID string) ([]*models.Feedback, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Feedback, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) MentorRatingStats(ctx context.Context, mentorID string) (*models.RatingStats, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingStats), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepositoryInterface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// RecordingNotifier captures dispatched events synchronously so tests can
// assert on the fan-out without racing a background goroutine.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []services.NotificationEvent
}

func (n *RecordingNotifier) Dispatch(events []services.NotificationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, events...)
}

func (n *RecordingNotifier) Events() []services.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]services.NotificationEvent, len(n.events))
	copy(out, n.events)
	return out
}

// MockStorageClient is a mock implementation of storage.ClientInterface
type MockStorageClient struct {
	mock.Mock
}

func (m *MockStorageClient) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) GenerateFileName(mentorID, originalFileName string) string {
	args := m.Called(mentorID, originalFileName)
	return args.String(0)
}

func (m *MockStorageClient) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockStorageClient) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}
