package handlers

import (
	"io"
	"net/http"
	"time"

	"clinicore/middleware"
	"clinicore/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamHeartbeat keeps idle SSE connections alive through proxies.
const streamHeartbeat = 25 * time.Second

// NotificationHandler serves the pull endpoint and the live SSE stream.
type NotificationHandler struct {
	Service notification.NotificationService
	Hub     *notification.Hub
	Logger  *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, hub *notification.Hub, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Service: svc, Hub: hub, Logger: logger}
}

// List returns the caller's notifications, optionally only unread ones.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	items, err := h.Service.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	updated, err := h.Service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Stream pushes the caller's notifications over server-sent events until the
// client disconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	ch, cancel := h.Hub.Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.Logger.Info("notification stream opened", zap.String("userID", userID.String()))

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case n, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-ticker.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	h.Logger.Info("notification stream closed", zap.String("userID", userID.String()))
}
