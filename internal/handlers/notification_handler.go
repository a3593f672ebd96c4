package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/services"
)

type NotificationHandler struct {
	service services.NotificationServiceInterface
}

func NewNotificationHandler(service services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	notifications, err := h.service.List(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	notification, err := h.service.MarkRead(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead marks every unread notification of the caller as read
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	principal, err := currentPrincipal(c)
	if err != nil {
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todas las notificaciones marcadas como leídas",
		"updated": updated,
	})
}
