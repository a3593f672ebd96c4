package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

type SessionHandler struct {
	sessions  services.SessionServiceInterface
	lifecycle services.LifecycleServiceInterface
}

func NewSessionHandler(sessions services.SessionServiceInterface, lifecycle services.LifecycleServiceInterface) *SessionHandler {
	return &SessionHandler{sessions: sessions, lifecycle: lifecycle}
}

// CreateSession books a session with a mentor
func (h *SessionHandler) CreateSession(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sesión agendada exitosamente",
		"session": session,
	})
}

// GetMySessions lists the caller's sessions as mentee
func (h *SessionHandler) GetMySessions(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	sessions, err := h.sessions.ListForMentee(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetMentorSessions lists the sessions booked against the caller's mentor profile
func (h *SessionHandler) GetMentorSessions(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	sessions, err := h.sessions.ListForMentor(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// UpdateSessionStatus moves a session along its lifecycle (mentor only)
func (h *SessionHandler) UpdateSessionStatus(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	var req models.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	session, err := h.lifecycle.UpdateStatus(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Sesión actualizada exitosamente"
	if session.Status == models.StatusConfirmed {
		message = "Sesión confirmada exitosamente"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"session": session,
	})
}

// CancelSession cancels a session on behalf of either participant
func (h *SessionHandler) CancelSession(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	session, err := h.lifecycle.Cancel(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión cancelada exitosamente",
		"session": session,
	})
}
