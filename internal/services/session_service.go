package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// SessionService handles session booking and listing
type SessionService struct {
	sessionRepo repository.SessionRepositoryInterface
	mentorRepo  repository.MentorRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	notifier    NotifierInterface
	clock       Clock
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepositoryInterface,
	mentorRepo repository.MentorRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notifier NotifierInterface,
	clock Clock,
) *SessionService {
	if clock == nil {
		clock = time.Now
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		mentorRepo:  mentorRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		clock:       clock,
	}
}

// Create books a new session. Only mentees book; the date must not lie in
// the past; the mentor must exist. The price is frozen from the mentor's
// hourly rate at booking time and the session starts out pending.
// Clashes with the mentor's declared availability are not checked.
func (s *SessionService) Create(ctx context.Context, principal *models.Principal, req *models.CreateSessionRequest) (*models.Session, error) {
	if !principal.IsMentee() {
		metrics.SessionsCreated.WithLabelValues("forbidden").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "Solo los mentorizados pueden agendar sesiones")
	}

	if req.Date.Before(s.clock()) {
		metrics.SessionsCreated.WithLabelValues("invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No se pueden agendar sesiones en fechas pasadas")
	}

	mentor, err := s.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.SessionsCreated.WithLabelValues("not_found").Inc()
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Mentor no encontrado")
		}
		metrics.SessionsCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := s.userRepo.Ensure(ctx, &models.User{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  principal.Role,
	}); err != nil {
		metrics.SessionsCreated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to ensure user row: %w", err)
	}

	session := &models.Session{
		MentorID:    mentor.ID,
		MenteeID:    principal.UserID,
		Date:        req.Date,
		Duration:    req.Duration,
		Topic:       req.Topic,
		Description: req.Description,
		Status:      models.StatusPending,
		Price:       models.SessionPrice(mentor.HourlyRate, req.Duration),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		metrics.SessionsCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	created, err := s.sessionRepo.GetByID(ctx, session.ID)
	if err != nil {
		metrics.SessionsCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SessionsCreated.WithLabelValues("success").Inc()
	logger.Info("Session booked",
		zap.String("session_id", created.ID),
		zap.String("mentor_id", created.MentorID),
		zap.String("mentee_id", created.MenteeID),
		zap.Float64("price", created.Price))

	s.notifier.Dispatch(sessionEvents(created,
		models.NotificationSessionCreated,
		"Nueva sesión agendada",
		fmt.Sprintf("Se ha agendado una nueva sesión sobre %q para el %s",
			created.Topic, created.Date.Format("02/01/2006")),
	))

	return created, nil
}

// ListForMentee returns the caller's booked sessions in listing order
func (s *SessionService) ListForMentee(ctx context.Context, principal *models.Principal) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.ListByMentee(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	models.SortSessions(sessions, s.clock())
	return sessions, nil
}

// ListForMentor returns the sessions held against the caller's mentor
// profile in listing order.
func (s *SessionService) ListForMentor(ctx context.Context, principal *models.Principal) ([]*models.Session, error) {
	mentor, err := mentorProfileOf(ctx, s.mentorRepo, principal)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByMentor(ctx, mentor.ID)
	if err != nil {
		return nil, err
	}
	models.SortSessions(sessions, s.clock())
	return sessions, nil
}
