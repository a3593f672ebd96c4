package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// FeedbackService handles one-time session ratings and keeps the mentor's
// aggregate rating in sync.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepositoryInterface
	sessionRepo  repository.SessionRepositoryInterface
	mentorRepo   repository.MentorRepositoryInterface
	notifier     NotifierInterface
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepositoryInterface,
	sessionRepo repository.SessionRepositoryInterface,
	mentorRepo repository.MentorRepositoryInterface,
	notifier NotifierInterface,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		sessionRepo:  sessionRepo,
		mentorRepo:   mentorRepo,
		notifier:     notifier,
	}
}

// Create submits feedback for a completed session. Only the session's
// mentee may rate, exactly once; the pre-check keeps the common path
// friendly and the UNIQUE index closes the concurrent race. On success
// the mentor's aggregate rating is recomputed and the mentor notified.
func (s *FeedbackService) Create(ctx context.Context, principal *models.Principal, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.FeedbackSubmissions.WithLabelValues("not_found").Inc()
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Sesión no encontrada")
		}
		metrics.FeedbackSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}

	if session.Status != models.StatusCompleted {
		metrics.FeedbackSubmissions.WithLabelValues("invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Solo puedes calificar sesiones completadas")
	}

	if session.MenteeID != principal.UserID {
		metrics.FeedbackSubmissions.WithLabelValues("forbidden").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "Solo el mentorizado puede calificar la sesión")
	}

	if _, err := s.feedbackRepo.GetBySessionID(ctx, req.SessionID); err == nil {
		metrics.FeedbackSubmissions.WithLabelValues("conflict").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "Ya has calificado esta sesión")
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		metrics.FeedbackSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}

	feedback := &models.Feedback{
		SessionID: session.ID,
		MenteeID:  principal.UserID,
		MentorID:  session.MentorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			metrics.FeedbackSubmissions.WithLabelValues("conflict").Inc()
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "Ya has calificado esta sesión")
		}
		metrics.FeedbackSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.FeedbackSubmissions.WithLabelValues("success").Inc()
	logger.Info("Feedback submitted",
		zap.String("session_id", session.ID),
		zap.String("mentor_id", session.MentorID),
		zap.Int("rating", req.Rating))

	// Best effort: a failed recompute leaves the stored aggregate stale
	// until the next submission, it never undoes the feedback itself
	s.recomputeMentorRating(ctx, session.MentorID)

	if session.Mentor != nil {
		s.notifier.Dispatch([]NotificationEvent{{
			UserID:    session.Mentor.UserID,
			Type:      models.NotificationFeedbackReceived,
			Title:     "Nuevo feedback recibido",
			Message:   fmt.Sprintf("%s calificó tu sesión sobre %q con %d estrellas", principal.Name, session.Topic, req.Rating),
			SessionID: session.ID,
		}})
	}

	created, err := s.feedbackRepo.GetBySessionID(ctx, session.ID)
	if err != nil {
		return feedback, nil
	}
	return created, nil
}

// recomputeMentorRating recalculates the aggregate from every stored
// feedback row: mean rounded to one decimal, plus the row count. Zero
// rows leave the profile untouched.
func (s *FeedbackService) recomputeMentorRating(ctx context.Context, mentorID string) {
	stats, err := s.feedbackRepo.MentorRatingStats(ctx, mentorID)
	if err != nil {
		metrics.RatingRecomputations.WithLabelValues("error").Inc()
		logger.Error("Failed to aggregate mentor rating",
			zap.String("mentor_id", mentorID),
			zap.Error(err))
		return
	}
	if stats.Count == 0 {
		return
	}

	rounded := math.Round(stats.Average*10) / 10
	if err := s.mentorRepo.UpdateRating(ctx, mentorID, rounded, stats.Count); err != nil {
		metrics.RatingRecomputations.WithLabelValues("error").Inc()
		logger.Error("Failed to store mentor rating",
			zap.String("mentor_id", mentorID),
			zap.Error(err))
		return
	}

	metrics.RatingRecomputations.WithLabelValues("success").Inc()
	logger.Debug("Mentor rating recomputed",
		zap.String("mentor_id", mentorID),
		zap.Float64("rating", rounded),
		zap.Int("review_count", stats.Count))
}

// ListForMentor returns the feedback a mentor has received, newest first
func (s *FeedbackService) ListForMentor(ctx context.Context, mentorID string) ([]*models.Feedback, error) {
	return s.feedbackRepo.ListByMentor(ctx, mentorID)
}

// ListForMentee returns the feedback the caller has written, newest first
func (s *FeedbackService) ListForMentee(ctx context.Context, principal *models.Principal) ([]*models.Feedback, error) {
	return s.feedbackRepo.ListByMentee(ctx, principal.UserID)
}

// GetBySession returns a session's feedback to its mentor or mentee only
func (s *FeedbackService) GetBySession(ctx context.Context, principal *models.Principal, sessionID string) (*models.Feedback, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Sesión no encontrada")
		}
		return nil, err
	}

	isMentee := session.MenteeID == principal.UserID
	isMentor := session.Mentor != nil && session.Mentor.UserID == principal.UserID
	if !isMentee && !isMentor {
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "No tienes permisos para ver este feedback")
	}

	feedback, err := s.feedbackRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Feedback no encontrado")
		}
		return nil, err
	}
	return feedback, nil
}
