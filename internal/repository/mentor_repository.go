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

// MentorRepositoryInterface defines the interface for mentor data access operations.
type MentorRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Mentor, error)
	Search(ctx context.Context, filters models.MentorSearchFilters) ([]*models.Mentor, error)
	Create(ctx context.Context, mentor *models.Mentor) error
	Update(ctx context.Context, mentor *models.Mentor) error
	UpdateRating(ctx context.Context, mentorID string, rating float64, reviewCount int) error
	UpdatePicture(ctx context.Context, mentorID, pictureURL string) error
}

// MentorRepository handles mentor profile persistence
type MentorRepository struct {
	pool *pgxpool.Pool
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(pool *pgxpool.Pool) MentorRepositoryInterface {
	return &MentorRepository{pool: pool}
}

const mentorColumns = `
	m.id, m.user_id, m.expertise, m.bio, m.experience, m.hourly_rate,
	m.rating, m.review_count, m.is_available, m.picture_url,
	m.created_at, m.updated_at,
	u.name, u.email, u.avatar, u.role, u.created_at`

const mentorBaseQuery = `
	SELECT ` + mentorColumns + `
	FROM mentors m
	JOIN users u ON u.id = m.user_id`

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	mentor := &models.Mentor{User: &models.User{}}
	err := row.Scan(
		&mentor.ID, &mentor.UserID, &mentor.Expertise, &mentor.Bio,
		&mentor.Experience, &mentor.HourlyRate, &mentor.Rating,
		&mentor.ReviewCount, &mentor.IsAvailable, &mentor.PictureURL,
		&mentor.CreatedAt, &mentor.UpdatedAt,
		&mentor.User.Name, &mentor.User.Email, &mentor.User.Avatar,
		&mentor.User.Role, &mentor.User.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	mentor.User.ID = mentor.UserID
	return mentor, nil
}

// GetAll returns every mentor profile, best rated first
func (r *MentorRepository) GetAll(ctx context.Context) (mentors []*models.Mentor, err error) {
	done := timer("mentors.list")
	defer func() { done(err) }()

	rows, err := r.pool.Query(ctx, mentorBaseQuery+` ORDER BY m.rating DESC, m.review_count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	defer rows.Close()

	mentors = []*models.Mentor{}
	for rows.Next() {
		mentor, scanErr := scanMentor(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan mentor: %w", scanErr)
		}
		mentors = append(mentors, mentor)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mentors: %w", err)
	}
	return mentors, nil
}

// GetByID fetches one mentor profile with its user expanded
func (r *MentorRepository) GetByID(ctx context.Context, id string) (mentor *models.Mentor, err error) {
	done := timer("mentors.get")
	defer func() { done(err) }()

	mentor, err = scanMentor(r.pool.QueryRow(ctx, mentorBaseQuery+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, notFoundIfNoRows(err, "mentor")
	}
	return mentor, nil
}

// GetByUserID resolves the mentor profile owned by a user
func (r *MentorRepository) GetByUserID(ctx context.Context, userID string) (mentor *models.Mentor, err error) {
	done := timer("mentors.get_by_user")
	defer func() { done(err) }()

	mentor, err = scanMentor(r.pool.QueryRow(ctx, mentorBaseQuery+` WHERE m.user_id = $1`, userID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "mentor")
	}
	return mentor, nil
}

// Search returns available mentors matching the given filters, best rated
// first. Filters combine with AND; zero filters returns every available
// mentor.
func (r *MentorRepository) Search(ctx context.Context, filters models.MentorSearchFilters) (mentors []*models.Mentor, err error) {
	done := timer("mentors.search")
	defer func() { done(err) }()

	query := mentorBaseQuery + ` WHERE m.is_available`
	args := []interface{}{}

	if filters.Expertise != "" {
		args = append(args, filters.Expertise)
		query += fmt.Sprintf(" AND $%d = ANY(m.expertise)", len(args))
	}
	if filters.MinRate != nil {
		args = append(args, *filters.MinRate)
		query += fmt.Sprintf(" AND m.hourly_rate >= $%d", len(args))
	}
	if filters.MaxRate != nil {
		args = append(args, *filters.MaxRate)
		query += fmt.Sprintf(" AND m.hourly_rate <= $%d", len(args))
	}
	query += ` ORDER BY m.rating DESC, m.review_count DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search mentors: %w", err)
	}
	defer rows.Close()

	mentors = []*models.Mentor{}
	for rows.Next() {
		mentor, scanErr := scanMentor(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan mentor: %w", scanErr)
		}
		mentors = append(mentors, mentor)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mentors: %w", err)
	}
	return mentors, nil
}

// Create inserts a new mentor profile. A concurrent insert for the same
// user trips the UNIQUE(user_id) index and is reported as a conflict.
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) (err error) {
	done := timer("mentors.insert")
	defer func() { done(err) }()

	if mentor.ID == "" {
		mentor.ID = uuid.New().String()
	}

	query := `
		INSERT INTO mentors (id, user_id, expertise, bio, experience, hourly_rate, is_available, picture_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING rating, review_count, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		mentor.ID, mentor.UserID, mentor.Expertise, mentor.Bio,
		mentor.Experience, mentor.HourlyRate, mentor.IsAvailable, mentor.PictureURL,
	).Scan(&mentor.Rating, &mentor.ReviewCount, &mentor.CreatedAt, &mentor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ConflictError("mentor profile already exists")
		}
		return fmt.Errorf("failed to insert mentor profile: %w", err)
	}
	return nil
}

// Update overwrites the editable profile fields
func (r *MentorRepository) Update(ctx context.Context, mentor *models.Mentor) (err error) {
	done := timer("mentors.update")
	defer func() { done(err) }()

	query := `
		UPDATE mentors
		SET expertise = $2, bio = $3, experience = $4, hourly_rate = $5,
		    is_available = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.pool.QueryRow(ctx, query,
		mentor.ID, mentor.Expertise, mentor.Bio, mentor.Experience,
		mentor.HourlyRate, mentor.IsAvailable,
	).Scan(&mentor.UpdatedAt)
	if err != nil {
		return notFoundIfNoRows(err, "mentor")
	}
	return nil
}

// UpdateRating stores the recomputed aggregate produced by the feedback flow
func (r *MentorRepository) UpdateRating(ctx context.Context, mentorID string, rating float64, reviewCount int) (err error) {
	done := timer("mentors.update_rating")
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx,
		`UPDATE mentors SET rating = $2, review_count = $3, updated_at = now() WHERE id = $1`,
		mentorID, rating, reviewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update mentor rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("mentor")
	}
	return nil
}

// UpdatePicture stores the public URL of an uploaded profile picture
func (r *MentorRepository) UpdatePicture(ctx context.Context, mentorID, pictureURL string) (err error) {
	done := timer("mentors.update_picture")
	defer func() { done(err) }()

	tag, err := r.pool.Exec(ctx,
		`UPDATE mentors SET picture_url = $2, updated_at = now() WHERE id = $1`,
		mentorID, pictureURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update mentor picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("mentor")
	}
	return nil
}
