package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// currentPrincipal extracts the authenticated caller set by the auth
// middleware. A missing principal on a protected route means the route was
// wired without AuthMiddleware, which we still surface as 401 rather than
// panicking.
func currentPrincipal(c *gin.Context) (*models.Principal, error) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		respondError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Token de acceso requerido"))
		return nil, err
	}
	return principal, nil
}
