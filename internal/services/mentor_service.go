package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/config"
	"github.com/mentorhub/mentorhub-api/internal/cache"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
	"github.com/mentorhub/mentorhub-api/pkg/storage"
)

// MentorService handles the public mentor directory and profile management
type MentorService struct {
	mentorRepo  repository.MentorRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	mentorCache cache.MentorCacheInterface
	storage     storage.ClientInterface
	config      *config.Config
}

// NewMentorService creates a new mentor service
func NewMentorService(
	mentorRepo repository.MentorRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	mentorCache cache.MentorCacheInterface,
	storageClient storage.ClientInterface,
	cfg *config.Config,
) *MentorService {
	return &MentorService{
		mentorRepo:  mentorRepo,
		userRepo:    userRepo,
		mentorCache: mentorCache,
		storage:     storageClient,
		config:      cfg,
	}
}

// List returns the mentor directory, served from cache when available
func (s *MentorService) List(ctx context.Context) ([]*models.Mentor, error) {
	if s.mentorCache != nil && s.mentorCache.IsReady() {
		return s.mentorCache.Get()
	}
	return s.mentorRepo.GetAll(ctx)
}

// Search returns available mentors matching the filters, straight from the
// database so filters always see fresh rates.
func (s *MentorService) Search(ctx context.Context, filters models.MentorSearchFilters) ([]*models.Mentor, error) {
	return s.mentorRepo.Search(ctx, filters)
}

// GetByID fetches one mentor profile
func (s *MentorService) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Mentor no encontrado")
		}
		return nil, err
	}
	return mentor, nil
}

// UpsertProfile creates or updates the caller's mentor profile. Only users
// carrying the mentor role may hold one; a concurrent duplicate create is
// reported as a conflict by the storage layer.
func (s *MentorService) UpsertProfile(ctx context.Context, principal *models.Principal, req *models.UpsertMentorProfileRequest) (*models.Mentor, error) {
	if !principal.IsMentor() {
		metrics.ProfileUpdates.WithLabelValues("forbidden").Inc()
		return nil, apperrors.WithMessage(apperrors.ErrAccessDenied, "Solo los mentores pueden crear perfiles")
	}

	if err := s.userRepo.Ensure(ctx, &models.User{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  principal.Role,
	}); err != nil {
		metrics.ProfileUpdates.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to ensure user row: %w", err)
	}

	mentor, err := s.mentorRepo.GetByUserID(ctx, principal.UserID)
	switch {
	case err == nil:
		mentor.Expertise = req.Expertise
		mentor.Bio = req.Bio
		mentor.Experience = req.Experience
		mentor.HourlyRate = *req.HourlyRate
		if err := s.mentorRepo.Update(ctx, mentor); err != nil {
			metrics.ProfileUpdates.WithLabelValues("error").Inc()
			return nil, err
		}

	case apperrors.Is(err, apperrors.ErrNotFound):
		mentor = &models.Mentor{
			UserID:      principal.UserID,
			Expertise:   req.Expertise,
			Bio:         req.Bio,
			Experience:  req.Experience,
			HourlyRate:  *req.HourlyRate,
			IsAvailable: true,
		}
		if err := s.mentorRepo.Create(ctx, mentor); err != nil {
			if apperrors.Is(err, apperrors.ErrConflict) {
				metrics.ProfileUpdates.WithLabelValues("conflict").Inc()
				return nil, apperrors.WithMessage(apperrors.ErrConflict, "El perfil de mentor ya existe")
			}
			metrics.ProfileUpdates.WithLabelValues("error").Inc()
			return nil, err
		}
		mentor.User = &models.User{
			ID:    principal.UserID,
			Name:  principal.Name,
			Email: principal.Email,
			Role:  principal.Role,
		}

	default:
		metrics.ProfileUpdates.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ProfileUpdates.WithLabelValues("success").Inc()
	logger.Info("Mentor profile saved",
		zap.String("mentor_id", mentor.ID),
		zap.String("user_id", principal.UserID))

	if s.mentorCache != nil {
		s.mentorCache.Invalidate()
	}
	return mentor, nil
}

// UploadPicture stores a base64-encoded profile picture and records its
// public URL on the caller's mentor profile.
func (s *MentorService) UploadPicture(ctx context.Context, principal *models.Principal, req *models.UploadPictureRequest) (string, error) {
	if !principal.IsMentor() {
		metrics.ProfilePictureUploads.WithLabelValues("forbidden").Inc()
		return "", apperrors.WithMessage(apperrors.ErrAccessDenied, "Solo los mentores pueden subir fotos de perfil")
	}

	if s.storage == nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		return "", apperrors.InternalError("image storage not configured")
	}

	mentor, err := mentorProfileOf(ctx, s.mentorRepo, principal)
	if err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		return "", err
	}

	if err := s.storage.ValidateImageType(req.ContentType); err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Formato de imagen no soportado")
	}
	if err := s.storage.ValidateImageSize(req.ImageData); err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "La imagen excede el tamaño máximo permitido")
	}

	key := s.storage.GenerateFileName(mentor.ID, req.FileName)
	url, err := s.storage.UploadImage(ctx, req.ImageData, key, req.ContentType)
	if err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to upload profile picture",
			zap.String("mentor_id", mentor.ID),
			zap.Error(err))
		return "", apperrors.InternalError("picture upload failed")
	}

	if err := s.mentorRepo.UpdatePicture(ctx, mentor.ID, url); err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.ProfilePictureUploads.WithLabelValues("success").Inc()
	logger.Info("Profile picture uploaded",
		zap.String("mentor_id", mentor.ID),
		zap.String("url", url))

	if s.mentorCache != nil {
		s.mentorCache.Invalidate()
	}
	return url, nil
}
