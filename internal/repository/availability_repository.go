package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/mentorhub-api/internal/models"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// AvailabilityRepositoryInterface defines the interface for availability
// template persistence. Records are one-to-one with mentor profiles and
// created lazily on first access.
type AvailabilityRepositoryInterface interface {
	GetByMentorID(ctx context.Context, mentorID string) (*models.Availability, error)
	GetOrCreate(ctx context.Context, mentorID string) (*models.Availability, error)
	Update(ctx context.Context, mentorID string, timeZone *string, weekly *models.WeeklySlots) (*models.Availability, error)
}

// AvailabilityRepository handles availability template persistence
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(pool *pgxpool.Pool) AvailabilityRepositoryInterface {
	return &AvailabilityRepository{pool: pool}
}

func scanAvailability(row pgx.Row) (*models.Availability, error) {
	avail := &models.Availability{}
	var weekly []byte
	err := row.Scan(
		&avail.ID, &avail.MentorID, &avail.TimeZone, &weekly,
		&avail.CreatedAt, &avail.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(weekly, &avail.WeeklySlots); err != nil {
		return nil, fmt.Errorf("failed to decode weekly slots for mentor %s: %w", avail.MentorID, err)
	}
	return avail, nil
}

const availabilityBaseQuery = `
	SELECT id, mentor_id, time_zone, weekly_slots, created_at, updated_at
	FROM availabilities`

// GetByMentorID fetches the availability template for one mentor
func (r *AvailabilityRepository) GetByMentorID(ctx context.Context, mentorID string) (avail *models.Availability, err error) {
	done := timer("availabilities.get")
	defer func() { done(err) }()

	avail, err = scanAvailability(r.pool.QueryRow(ctx, availabilityBaseQuery+` WHERE mentor_id = $1`, mentorID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "availability")
	}
	return avail, nil
}

// GetOrCreate fetches the mentor's template, inserting an empty default
// (default timezone, no slots) on first access. Concurrent first reads are
// resolved by ON CONFLICT DO NOTHING followed by a re-read.
func (r *AvailabilityRepository) GetOrCreate(ctx context.Context, mentorID string) (*models.Availability, error) {
	avail, err := r.GetByMentorID(ctx, mentorID)
	if err == nil {
		return avail, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	done := timer("availabilities.insert")
	_, err = r.pool.Exec(ctx, `
		INSERT INTO availabilities (id, mentor_id, time_zone, weekly_slots)
		VALUES ($1, $2, $3, '{}'::jsonb)
		ON CONFLICT (mentor_id) DO NOTHING`,
		uuid.New().String(), mentorID, models.DefaultTimeZone,
	)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to create default availability: %w", err)
	}

	return r.GetByMentorID(ctx, mentorID)
}

// Update partially overwrites the template. Nil arguments leave the stored
// value untouched.
func (r *AvailabilityRepository) Update(ctx context.Context, mentorID string, timeZone *string, weekly *models.WeeklySlots) (avail *models.Availability, err error) {
	done := timer("availabilities.update")
	defer func() { done(err) }()

	var weeklyJSON []byte
	if weekly != nil {
		weeklyJSON, err = json.Marshal(weekly)
		if err != nil {
			return nil, fmt.Errorf("failed to encode weekly slots: %w", err)
		}
	}

	query := `
		UPDATE availabilities
		SET time_zone = COALESCE($2, time_zone),
		    weekly_slots = COALESCE($3, weekly_slots),
		    updated_at = now()
		WHERE mentor_id = $1
		RETURNING id, mentor_id, time_zone, weekly_slots, created_at, updated_at`

	avail, err = scanAvailability(r.pool.QueryRow(ctx, query, mentorID, timeZone, weeklyJSON))
	if err != nil {
		return nil, notFoundIfNoRows(err, "availability")
	}
	return avail, nil
}
