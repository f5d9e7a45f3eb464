package handlers

import (
	"net/http"

	"dreamhi/services/notification"
	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the caller's inbox.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListMine handles GET /api/notifications
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	list, err := h.Service.ListUserNotifications(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	respond(c, http.StatusOK, "notifications", list)
}
