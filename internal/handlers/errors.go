package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError maps a service error to its HTTP status and client message.
// Errors that don't match any sentinel are treated as internal and never
// leak their text to the client.
func respondError(c *gin.Context, err error) {
	attachError(c, err)

	status := http.StatusInternalServerError
	message := "Error interno del servidor"

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, "Solicitud inválida"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "No autorizado"
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		status, message = http.StatusForbidden, "Acceso denegado"
	case apperrors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Recurso no encontrado"
	case apperrors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, "Conflicto con el estado actual del recurso"
	}

	if status != http.StatusInternalServerError {
		if m := apperrors.UserMessage(err); m != "" {
			message = m
		}
	}

	c.JSON(status, gin.H{"message": message})
}

// respondValidationError sends a 400 with per-field details for binding failures
func respondValidationError(c *gin.Context, err error) {
	attachError(c, err)
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Datos de entrada inválidos",
		"errors":  ParseValidationErrors(err),
	})
}
