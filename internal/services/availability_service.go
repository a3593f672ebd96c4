package services

import (
	"context"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	"github.com/mentorhub/mentorhub-api/internal/schedule"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// AvailabilityService manages mentors' recurring weekly availability
// templates. Records are created lazily with an empty template on first
// access, for the owner and for other callers alike.
type AvailabilityService struct {
	availabilityRepo repository.AvailabilityRepositoryInterface
	mentorRepo       repository.MentorRepositoryInterface
	clock            Clock
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepositoryInterface,
	mentorRepo repository.MentorRepositoryInterface,
	clock Clock,
) *AvailabilityService {
	if clock == nil {
		clock = time.Now
	}
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		mentorRepo:       mentorRepo,
		clock:            clock,
	}
}

// GetMine returns the caller's availability template
func (s *AvailabilityService) GetMine(ctx context.Context, principal *models.Principal) (*models.Availability, error) {
	mentor, err := mentorProfileOf(ctx, s.mentorRepo, principal)
	if err != nil {
		return nil, err
	}
	return s.availabilityRepo.GetOrCreate(ctx, mentor.ID)
}

// UpdateMine partially overwrites the caller's template. Omitted fields
// keep their stored value; slot label/time consistency is not validated
// here.
func (s *AvailabilityService) UpdateMine(ctx context.Context, principal *models.Principal, req *models.UpdateAvailabilityRequest) (*models.Availability, error) {
	mentor, err := mentorProfileOf(ctx, s.mentorRepo, principal)
	if err != nil {
		return nil, err
	}

	if _, err := s.availabilityRepo.GetOrCreate(ctx, mentor.ID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.Update(ctx, mentor.ID, req.TimeZone, req.WeeklySlots)
}

// GetForMentor returns a mentor's template for any authenticated caller.
// The mentor must exist; the template itself is lazily created.
func (s *AvailabilityService) GetForMentor(ctx context.Context, mentorID string) (*models.Availability, error) {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Mentor no encontrado")
		}
		return nil, err
	}
	return s.availabilityRepo.GetOrCreate(ctx, mentorID)
}

// ResolveSlots returns the concrete bookable windows a mentor offers on
// one calendar date (YYYY-MM-DD, interpreted in the mentor's timezone).
// Slots whose start instant is not strictly in the future are dropped.
func (s *AvailabilityService) ResolveSlots(ctx context.Context, mentorID, date string) ([]schedule.Slot, error) {
	avail, err := s.GetForMentor(ctx, mentorID)
	if err != nil {
		metrics.SlotResolutions.WithLabelValues("error").Inc()
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, avail.Location())
	if err != nil {
		metrics.SlotResolutions.WithLabelValues("invalid").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fecha inválida, usa el formato YYYY-MM-DD")
	}

	slots := schedule.Resolve(avail, day, s.clock())
	metrics.SlotResolutions.WithLabelValues("success").Inc()
	return slots, nil
}
