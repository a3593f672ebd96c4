package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/mentorhub-api/internal/models"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// FeedbackRepositoryInterface defines the interface for feedback
// persistence. The UNIQUE(session_id) index is the hard storage-level
// invariant: at most one feedback row per session, ever.
type FeedbackRepositoryInterface interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Feedback, error)
	ListByMentor(ctx context.Context, mentorID string) ([]*models.Feedback, error)
	ListByMentee(ctx context.Context, menteeID string) ([]*models.Feedback, error)
	MentorRatingStats(ctx context.Context, mentorID string) (*models.RatingStats, error)
}

// FeedbackRepository handles feedback persistence
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepositoryInterface {
	return &FeedbackRepository{pool: pool}
}

// Feedback reads expand the authoring mentee and the rated session so the
// mentor profile page renders without extra lookups.
const feedbackBaseQuery = `
	SELECT f.id, f.session_id, f.mentee_id, f.mentor_id, f.rating,
	       f.comment, f.created_at,
	       u.name, u.avatar,
	       s.topic, s.date
	FROM feedback f
	JOIN users u ON u.id = f.mentee_id
	JOIN sessions s ON s.id = f.session_id`

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	feedback := &models.Feedback{
		Mentee:  &models.User{Role: models.RoleMentee},
		Session: &models.Session{},
	}
	err := row.Scan(
		&feedback.ID, &feedback.SessionID, &feedback.MenteeID,
		&feedback.MentorID, &feedback.Rating, &feedback.Comment,
		&feedback.CreatedAt,
		&feedback.Mentee.Name, &feedback.Mentee.Avatar,
		&feedback.Session.Topic, &feedback.Session.Date,
	)
	if err != nil {
		return nil, err
	}
	feedback.Mentee.ID = feedback.MenteeID
	feedback.Session.ID = feedback.SessionID
	return feedback, nil
}

// Create inserts a feedback row. A duplicate for the same session trips
// UNIQUE(session_id) and is reported as a conflict, which closes the race
// left open by the service-level pre-check.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) (err error) {
	done := timer("feedback.insert")
	defer func() { done(err) }()

	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}

	query := `
		INSERT INTO feedback (id, session_id, mentee_id, mentor_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = r.pool.QueryRow(ctx, query,
		feedback.ID, feedback.SessionID, feedback.MenteeID,
		feedback.MentorID, feedback.Rating, feedback.Comment,
	).Scan(&feedback.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ConflictError("feedback already submitted for this session")
		}
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// GetBySessionID fetches the single feedback row for a session
func (r *FeedbackRepository) GetBySessionID(ctx context.Context, sessionID string) (feedback *models.Feedback, err error) {
	done := timer("feedback.get_by_session")
	defer func() { done(err) }()

	feedback, err = scanFeedback(r.pool.QueryRow(ctx, feedbackBaseQuery+` WHERE f.session_id = $1`, sessionID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "feedback")
	}
	return feedback, nil
}

func (r *FeedbackRepository) list(ctx context.Context, operation, where, id string) (feedbacks []*models.Feedback, err error) {
	done := timer(operation)
	defer func() { done(err) }()

	rows, err := r.pool.Query(ctx, feedbackBaseQuery+where+` ORDER BY f.created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks = []*models.Feedback{}
	for rows.Next() {
		feedback, scanErr := scanFeedback(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", scanErr)
		}
		feedbacks = append(feedbacks, feedback)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}
	return feedbacks, nil
}

// ListByMentor returns the feedback received by a mentor, newest first
func (r *FeedbackRepository) ListByMentor(ctx context.Context, mentorID string) ([]*models.Feedback, error) {
	return r.list(ctx, "feedback.list_by_mentor", ` WHERE f.mentor_id = $1`, mentorID)
}

// ListByMentee returns the feedback written by a mentee, newest first
func (r *FeedbackRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Feedback, error) {
	return r.list(ctx, "feedback.list_by_mentee", ` WHERE f.mentee_id = $1`, menteeID)
}

// MentorRatingStats aggregates over every feedback row held against a
// mentor. Zero rows yields {0, 0}; the caller decides what that means.
func (r *FeedbackRepository) MentorRatingStats(ctx context.Context, mentorID string) (stats *models.RatingStats, err error) {
	done := timer("feedback.rating_stats")
	defer func() { done(err) }()

	stats = &models.RatingStats{}
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM feedback WHERE mentor_id = $1`,
		mentorID,
	).Scan(&stats.Average, &stats.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate mentor rating: %w", err)
	}
	return stats, nil
}
