package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/config"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

var testMeeting = config.MeetingConfig{BaseURL: "https://meet.jit.si", RoomPrefix: "mentores"}

func newLifecycleService(sessionRepo *MockSessionRepository, mentorRepo *MockMentorRepository, notifier *RecordingNotifier) *services.LifecycleService {
	return services.NewLifecycleService(sessionRepo, mentorRepo, notifier, testMeeting, fixedClock)
}

func pendingSession() *models.Session {
	return &models.Session{
		ID:       "session-1",
		MentorID: "mentor-1",
		MenteeID: "user-mentee",
		Topic:    "Go interfaces",
		Date:     testNow.Add(48 * time.Hour),
		Status:   models.StatusPending,
		Mentor:   testMentor(),
		Mentee:   &models.User{ID: "user-mentee", Name: "Ana"},
	}
}

func TestLifecycle_Confirm_AssignsMeetingLink(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}
	notifier := &RecordingNotifier{}

	session := pendingSession()
	confirmed := pendingSession()
	confirmed.Status = models.StatusConfirmed
	confirmed.MeetingLink = "https://meet.jit.si/mentores-session-1"

	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)
	mentorRepo.On("GetByUserID", mock.Anything, "user-mentor").Return(testMentor(), nil)
	sessionRepo.On("UpdateStatus", mock.Anything, "session-1", models.StatusConfirmed,
		"https://meet.jit.si/mentores-session-1").Return(confirmed, nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, notifier)

	updated, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "session-1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "https://meet.jit.si/mentores-session-1", updated.MeetingLink)

	events := notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, models.NotificationSessionConfirmed, events[0].Type)
	sessionRepo.AssertExpectations(t)
}

func TestLifecycle_UpdateStatus_OnlyOwningMentor(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}

	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(pendingSession(), nil)
	// The caller owns a mentor profile, but not this session's
	other := testMentor()
	other.ID = "mentor-2"
	mentorRepo.On("GetByUserID", mock.Anything, "user-mentor").Return(other, nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, &RecordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "session-1", models.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))
	sessionRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycle_PendingCannotJumpToCompleted(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}

	session := pendingSession()
	session.Date = testNow.Add(-24 * time.Hour)
	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)
	mentorRepo.On("GetByUserID", mock.Anything, "user-mentor").Return(testMentor(), nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, &RecordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "session-1", models.StatusCompleted)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestLifecycle_CompleteFutureSessionRejected(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}

	session := pendingSession()
	session.Status = models.StatusConfirmed
	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)
	mentorRepo.On("GetByUserID", mock.Anything, "user-mentor").Return(testMentor(), nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, &RecordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "session-1", models.StatusCompleted)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "No se pueden completar sesiones futuras. La sesión debe haber ocurrido primero.", apperrors.UserMessage(err))
}

func TestLifecycle_Complete_NotifiesMenteeOnly(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}
	notifier := &RecordingNotifier{}

	session := pendingSession()
	session.Status = models.StatusConfirmed
	session.Date = testNow.Add(-2 * time.Hour)

	completed := pendingSession()
	completed.Status = models.StatusCompleted
	completed.Date = session.Date

	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)
	mentorRepo.On("GetByUserID", mock.Anything, "user-mentor").Return(testMentor(), nil)
	sessionRepo.On("UpdateStatus", mock.Anything, "session-1", models.StatusCompleted, "").Return(completed, nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, notifier)

	_, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "session-1", models.StatusCompleted)
	require.NoError(t, err)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.NotificationSessionCompleted, events[0].Type)
	assert.Equal(t, "user-mentee", events[0].UserID)
}

func TestLifecycle_Cancel_MenteeMayCancelConfirmed(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}
	notifier := &RecordingNotifier{}

	session := pendingSession()
	session.Status = models.StatusConfirmed

	cancelled := pendingSession()
	cancelled.Status = models.StatusCancelled

	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)
	sessionRepo.On("UpdateStatus", mock.Anything, "session-1", models.StatusCancelled, "").Return(cancelled, nil)

	svc := newLifecycleService(sessionRepo, mentorRepo, notifier)

	updated, err := svc.Cancel(context.Background(), menteePrincipal(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	events := notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, models.NotificationSessionCancelled, events[0].Type)
}

func TestLifecycle_Cancel_CompletedRejected(t *testing.T) {
	sessionRepo := &MockSessionRepository{}

	session := pendingSession()
	session.Status = models.StatusCompleted
	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)

	svc := newLifecycleService(sessionRepo, &MockMentorRepository{}, &RecordingNotifier{})

	_, err := svc.Cancel(context.Background(), menteePrincipal(), "session-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "No se pueden cancelar sesiones ya completadas", apperrors.UserMessage(err))
}

func TestLifecycle_Cancel_AlreadyCancelledRejected(t *testing.T) {
	sessionRepo := &MockSessionRepository{}

	session := pendingSession()
	session.Status = models.StatusCancelled
	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(session, nil)

	svc := newLifecycleService(sessionRepo, &MockMentorRepository{}, &RecordingNotifier{})

	_, err := svc.Cancel(context.Background(), menteePrincipal(), "session-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestLifecycle_Cancel_StrangerForbidden(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	mentorRepo := &MockMentorRepository{}

	sessionRepo.On("GetByID", mock.Anything, "session-1").Return(pendingSession(), nil)
	mentorRepo.On("GetByUserID", mock.Anything, "user-stranger").Return(nil, apperrors.NotFoundError("mentor"))

	svc := newLifecycleService(sessionRepo, mentorRepo, &RecordingNotifier{})

	stranger := &models.Principal{UserID: "user-stranger", Role: models.RoleMentee}
	_, err := svc.Cancel(context.Background(), stranger, "session-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))
}

func TestLifecycle_SessionNotFound(t *testing.T) {
	sessionRepo := &MockSessionRepository{}
	sessionRepo.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.NotFoundError("session"))

	svc := newLifecycleService(sessionRepo, &MockMentorRepository{}, &RecordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), mentorPrincipal(), "ghost", models.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Sesión no encontrada", apperrors.UserMessage(err))
}
