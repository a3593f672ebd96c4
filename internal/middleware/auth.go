package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/pkg/jwt"
)

// PrincipalContextKey is the key used to store the authenticated caller
const PrincipalContextKey = "principal"

var (
	ErrPrincipalNotFound = errors.New("principal not found in context")
	ErrInvalidPrincipal  = errors.New("invalid principal type")
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the request context. The token is minted by the identity
// service; this API only verifies it.
func AuthMiddleware(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token de acceso requerido"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expirado"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			}
			c.Abort()
			return
		}

		c.Set(PrincipalContextKey, &models.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role.
// Resource-level ownership stays with the services; this only gates the
// role dimension.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := GetPrincipal(c)
		if err != nil || principal.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"message": "No tienes permisos para esta acción"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal extracts the authenticated caller from the context
func GetPrincipal(c *gin.Context) (*models.Principal, error) {
	val, exists := c.Get(PrincipalContextKey)
	if !exists {
		return nil, ErrPrincipalNotFound
	}

	principal, ok := val.(*models.Principal)
	if !ok {
		return nil, ErrInvalidPrincipal
	}
	return principal, nil
}
