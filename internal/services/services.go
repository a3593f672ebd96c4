// Package services holds the business rules: booking, session lifecycle,
// feedback and rating aggregation, availability templates and the mentor
// directory. Services speak pkg/errors sentinels upward and repository
// interfaces downward; handlers stay thin.
package services

import (
	"context"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// Clock supplies the current time. Injected so temporal guards (past-date
// booking, future completion, slot cutoffs) are testable.
type Clock func() time.Time

// mentorProfileOf resolves the mentor profile owned by the principal,
// translating a missing profile into the client-facing not-found error.
func mentorProfileOf(ctx context.Context, repo repository.MentorRepositoryInterface, principal *models.Principal) (*models.Mentor, error) {
	mentor, err := repo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Perfil de mentor no encontrado")
		}
		return nil, err
	}
	return mentor, nil
}
