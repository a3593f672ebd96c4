package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

type AvailabilityHandler struct {
	service services.AvailabilityServiceInterface
}

func NewAvailabilityHandler(service services.AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// GetMyAvailability returns the caller's weekly template, creating an
// empty one on first access.
func (h *AvailabilityHandler) GetMyAvailability(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	availability, err := h.service.GetMine(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// UpdateMyAvailability partially overwrites the caller's weekly template
func (h *AvailabilityHandler) UpdateMyAvailability(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	availability, err := h.service.UpdateMine(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Disponibilidad actualizada exitosamente",
		"availability": availability,
	})
}

// GetMentorAvailability returns a mentor's weekly template
func (h *AvailabilityHandler) GetMentorAvailability(c *gin.Context) {
	availability, err := h.service.GetForMentor(c.Request.Context(), c.Param("mentorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// GetMentorSlots resolves a mentor's bookable slots for one calendar date
func (h *AvailabilityHandler) GetMentorSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		respondError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "El parámetro date es obligatorio"))
		return
	}

	slots, err := h.service.ResolveSlots(c.Request.Context(), c.Param("mentorId"), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
