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

// SessionRepositoryInterface defines the interface for session persistence.
// Sessions are never deleted; cancellation is a status, not a removal.
type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	ListByMentee(ctx context.Context, menteeID string) ([]*models.Session, error)
	ListByMentor(ctx context.Context, mentorID string) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, id string, status models.SessionStatus, meetingLink string) (*models.Session, error)
}

// SessionRepository handles session persistence
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(pool *pgxpool.Pool) SessionRepositoryInterface {
	return &SessionRepository{pool: pool}
}

// Session reads join both sides so listings carry the identity the
// frontend renders without extra round-trips.
const sessionBaseQuery = `
	SELECT s.id, s.mentor_id, s.mentee_id, s.date, s.duration, s.topic,
	       s.description, s.status, s.meeting_link, s.price,
	       s.created_at, s.updated_at,
	       m.user_id, m.expertise, m.hourly_rate, m.rating, m.picture_url,
	       mu.name, mu.email, mu.avatar,
	       me.name, me.email, me.avatar
	FROM sessions s
	JOIN mentors m ON m.id = s.mentor_id
	JOIN users mu ON mu.id = m.user_id
	JOIN users me ON me.id = s.mentee_id`

func scanSession(row pgx.Row) (*models.Session, error) {
	session := &models.Session{
		Mentor: &models.Mentor{User: &models.User{Role: models.RoleMentor}},
		Mentee: &models.User{Role: models.RoleMentee},
	}
	err := row.Scan(
		&session.ID, &session.MentorID, &session.MenteeID, &session.Date,
		&session.Duration, &session.Topic, &session.Description,
		&session.Status, &session.MeetingLink, &session.Price,
		&session.CreatedAt, &session.UpdatedAt,
		&session.Mentor.UserID, &session.Mentor.Expertise,
		&session.Mentor.HourlyRate, &session.Mentor.Rating, &session.Mentor.PictureURL,
		&session.Mentor.User.Name, &session.Mentor.User.Email, &session.Mentor.User.Avatar,
		&session.Mentee.Name, &session.Mentee.Email, &session.Mentee.Avatar,
	)
	if err != nil {
		return nil, err
	}
	session.Mentor.ID = session.MentorID
	session.Mentor.User.ID = session.Mentor.UserID
	session.Mentee.ID = session.MenteeID
	return session, nil
}

// Create inserts a new session row. Price and status are already decided
// by the caller; this layer never recomputes them.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) (err error) {
	done := timer("sessions.insert")
	defer func() { done(err) }()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sessions (id, mentor_id, mentee_id, date, duration, topic, description, status, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		session.ID, session.MentorID, session.MenteeID, session.Date,
		session.Duration, session.Topic, session.Description,
		session.Status, session.Price,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetByID fetches one session with both participants expanded
func (r *SessionRepository) GetByID(ctx context.Context, id string) (session *models.Session, err error) {
	done := timer("sessions.get")
	defer func() { done(err) }()

	session, err = scanSession(r.pool.QueryRow(ctx, sessionBaseQuery+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, notFoundIfNoRows(err, "session")
	}
	return session, nil
}

func (r *SessionRepository) list(ctx context.Context, operation, where, id string) (sessions []*models.Session, err error) {
	done := timer(operation)
	defer func() { done(err) }()

	rows, err := r.pool.Query(ctx, sessionBaseQuery+where, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions = []*models.Session{}
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan session: %w", scanErr)
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return sessions, nil
}

// ListByMentee returns every session booked by a mentee, unordered; the
// service layer applies the listing order.
func (r *SessionRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Session, error) {
	return r.list(ctx, "sessions.list_by_mentee", ` WHERE s.mentee_id = $1`, menteeID)
}

// ListByMentor returns every session held against a mentor profile
func (r *SessionRepository) ListByMentor(ctx context.Context, mentorID string) ([]*models.Session, error) {
	return r.list(ctx, "sessions.list_by_mentor", ` WHERE s.mentor_id = $1`, mentorID)
}

// UpdateStatus persists a lifecycle transition. A non-empty meetingLink is
// stored alongside the status; an empty one leaves the stored link alone,
// so a link set on confirmation survives later transitions.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id string, status models.SessionStatus, meetingLink string) (session *models.Session, err error) {
	done := timer("sessions.update_status")
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET status = $2,
		    meeting_link = CASE WHEN $3 <> '' THEN $3 ELSE meeting_link END,
		    updated_at = now()
		WHERE id = $1`,
		id, status, meetingLink,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFoundError("session")
	}

	return r.GetByID(ctx, id)
}
