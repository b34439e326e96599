package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httpresp"
)

type NotificationHandler struct {
	repo notification.Repository
}

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	list, err := h.repo.ListNotifications(c.Request.Context(), currentActor(c).ID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List(c, list)
}
