package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

type FeedbackHandler struct {
	service services.FeedbackServiceInterface
}

func NewFeedbackHandler(service services.FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// CreateFeedback rates a completed session
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	feedback, err := h.service.Create(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback enviado exitosamente",
		"feedback": feedback,
	})
}

// GetMentorFeedback lists the public feedback left for a mentor
func (h *FeedbackHandler) GetMentorFeedback(c *gin.Context) {
	feedback, err := h.service.ListForMentor(c.Request.Context(), c.Param("mentorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// GetMyFeedback lists the feedback the caller has submitted
func (h *FeedbackHandler) GetMyFeedback(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	feedback, err := h.service.ListForMentee(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// GetSessionFeedback returns the feedback for one session, visible only
// to its participants.
func (h *FeedbackHandler) GetSessionFeedback(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	feedback, err := h.service.GetBySession(c.Request.Context(), principal, c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}
