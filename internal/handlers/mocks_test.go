package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

type MockMentorService struct {
	mock.Mock
}

func (m *MockMentorService) List(ctx context.Context) ([]*models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorService) Search(ctx context.Context, filters models.MentorSearchFilters) ([]*models.Mentor, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorService) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorService) UpsertProfile(ctx context.Context, principal *models.Principal, req *models.UpsertMentorProfileRequest) (*models.Mentor, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorService) UploadPicture(ctx context.Context, principal *models.Principal, req *models.UploadPictureRequest) (string, error) {
	args := m.Called(ctx, principal, req)
	return args.String(0), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, principal *models.Principal, req *models.CreateSessionRequest) (*models.Session, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) ListForMentee(ctx context.Context, principal *models.Principal) ([]*models.Session, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionService) ListForMentor(ctx context.Context, principal *models.Principal) ([]*models.Session, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) UpdateStatus(ctx context.Context, principal *models.Principal, sessionID string, status models.SessionStatus) (*models.Session, error) {
	args := m.Called(ctx, principal, sessionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockLifecycleService) Cancel(ctx context.Context, principal *models.Principal, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, principal, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, principal *models.Principal) ([]*models.Notification, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, principal *models.Principal, id string) (*models.Notification, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, principal *models.Principal) (int64, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, principal *models.Principal) (int, error) {
	args := m.Called(ctx, principal)
	return args.Int(0), args.Error(1)
}
