package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// GetMentors returns the public mentor directory
func (h *MentorHandler) GetMentors(c *gin.Context) {
	mentors, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mentors)
}

// SearchMentors filters the directory by expertise and hourly rate range
func (h *MentorHandler) SearchMentors(c *gin.Context) {
	filters := models.MentorSearchFilters{
		Expertise: c.Query("expertise"),
	}

	if raw := c.Query("minRate"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Parámetro minRate inválido"))
			return
		}
		filters.MinRate = &v
	}
	if raw := c.Query("maxRate"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Parámetro maxRate inválido"))
			return
		}
		filters.MaxRate = &v
	}

	mentors, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mentors)
}

// GetMentorByID returns a single mentor profile
func (h *MentorHandler) GetMentorByID(c *gin.Context) {
	mentor, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mentor)
}

// UpsertProfile creates or updates the caller's mentor profile
func (h *MentorHandler) UpsertProfile(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.UpsertMentorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	mentor, err := h.service.UpsertProfile(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil de mentor guardado exitosamente",
		"mentor":  mentor,
	})
}

// UploadPicture stores a base64-encoded profile picture
func (h *MentorHandler) UploadPicture(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.UploadPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	url, err := h.service.UploadPicture(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Imagen de perfil actualizada exitosamente",
		"pictureUrl": url,
	})
}
