package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/config"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// LifecycleService drives session status transitions along the legal
// graph: pending -> {confirmed, cancelled}, confirmed -> {completed,
// cancelled}; completed and cancelled are terminal.
type LifecycleService struct {
	sessionRepo repository.SessionRepositoryInterface
	mentorRepo  repository.MentorRepositoryInterface
	notifier    NotifierInterface
	meeting     config.MeetingConfig
	clock       Clock
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	sessionRepo repository.SessionRepositoryInterface,
	mentorRepo repository.MentorRepositoryInterface,
	notifier NotifierInterface,
	meeting config.MeetingConfig,
	clock Clock,
) *LifecycleService {
	if clock == nil {
		clock = time.Now
	}
	return &LifecycleService{
		sessionRepo: sessionRepo,
		mentorRepo:  mentorRepo,
		notifier:    notifier,
		meeting:     meeting,
		clock:       clock,
	}
}

// meetingLink builds the video room URL assigned on confirmation
func (s *LifecycleService) meetingLink(sessionID string) string {
	return fmt.Sprintf("%s/%s-%s", s.meeting.BaseURL, s.meeting.RoomPrefix, sessionID)
}

// UpdateStatus moves a session along the lifecycle graph. Only the
// session's mentor may transition it. Confirmation assigns the meeting
// link; completion requires the session date to have passed.
func (s *LifecycleService) UpdateStatus(ctx context.Context, principal *models.Principal, sessionID string, status models.SessionStatus) (*models.Session, error) {
	if !status.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Estado de sesión inválido")
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Sesión no encontrada")
		}
		return nil, err
	}

	mentor, err := s.mentorRepo.GetByUserID(ctx, principal.UserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if err != nil || mentor.ID != session.MentorID {
		metrics.SessionTransitions.WithLabelValues(string(status), "forbidden").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "No tienes permisos para modificar esta sesión")
	}

	if !session.Status.CanTransitionTo(status) {
		metrics.SessionTransitions.WithLabelValues(string(status), "invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("No se puede cambiar el estado de %q a %q", session.Status, status))
	}

	if status == models.StatusCompleted && session.Date.After(s.clock()) {
		metrics.SessionTransitions.WithLabelValues(string(status), "invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"No se pueden completar sesiones futuras. La sesión debe haber ocurrido primero.")
	}

	link := ""
	if status == models.StatusConfirmed {
		link = s.meetingLink(session.ID)
	}

	updated, err := s.sessionRepo.UpdateStatus(ctx, session.ID, status, link)
	if err != nil {
		metrics.SessionTransitions.WithLabelValues(string(status), "error").Inc()
		return nil, err
	}

	metrics.SessionTransitions.WithLabelValues(string(status), "success").Inc()
	logger.Info("Session status updated",
		zap.String("session_id", updated.ID),
		zap.String("from", string(session.Status)),
		zap.String("to", string(status)))

	s.notifier.Dispatch(s.transitionEvents(updated, status))

	return updated, nil
}

// Cancel cancels a session on behalf of its mentor or its mentee. A
// completed session can no longer be cancelled; cancelling twice is
// rejected.
func (s *LifecycleService) Cancel(ctx context.Context, principal *models.Principal, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Sesión no encontrada")
		}
		return nil, err
	}

	if !s.mayCancel(ctx, principal, session) {
		metrics.SessionTransitions.WithLabelValues(string(models.StatusCancelled), "forbidden").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "No tienes permisos para cancelar esta sesión")
	}

	switch session.Status {
	case models.StatusCompleted:
		metrics.SessionTransitions.WithLabelValues(string(models.StatusCancelled), "invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No se pueden cancelar sesiones ya completadas")
	case models.StatusCancelled:
		metrics.SessionTransitions.WithLabelValues(string(models.StatusCancelled), "invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "La sesión ya está cancelada")
	}

	updated, err := s.sessionRepo.UpdateStatus(ctx, session.ID, models.StatusCancelled, "")
	if err != nil {
		metrics.SessionTransitions.WithLabelValues(string(models.StatusCancelled), "error").Inc()
		return nil, err
	}

	metrics.SessionTransitions.WithLabelValues(string(models.StatusCancelled), "success").Inc()
	logger.Info("Session cancelled",
		zap.String("session_id", updated.ID),
		zap.String("by_user", principal.UserID))

	s.notifier.Dispatch(s.transitionEvents(updated, models.StatusCancelled))

	return updated, nil
}

// mayCancel reports whether the principal is the session's mentee or the
// owner of its mentor profile.
func (s *LifecycleService) mayCancel(ctx context.Context, principal *models.Principal, session *models.Session) bool {
	if session.MenteeID == principal.UserID {
		return true
	}
	mentor, err := s.mentorRepo.GetByUserID(ctx, principal.UserID)
	return err == nil && mentor.ID == session.MentorID
}

func (s *LifecycleService) transitionEvents(session *models.Session, status models.SessionStatus) []NotificationEvent {
	switch status {
	case models.StatusConfirmed:
		return sessionEvents(session, models.NotificationSessionConfirmed,
			"Sesión confirmada",
			fmt.Sprintf("Tu sesión sobre %q ha sido confirmada", session.Topic))
	case models.StatusCancelled:
		return sessionEvents(session, models.NotificationSessionCancelled,
			"Sesión cancelada",
			fmt.Sprintf("La sesión sobre %q ha sido cancelada", session.Topic))
	case models.StatusCompleted:
		return sessionEvents(session, models.NotificationSessionCompleted,
			"Sesión completada",
			fmt.Sprintf("La sesión sobre %q ha sido marcada como completada", session.Topic))
	}
	return nil
}
