package handler

import (
	"net/http"
	"strconv"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List 当前用户的通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.List(viewerID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// MarkRead 标记已读，只能操作自己的通知
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(viewerID(c), notificationID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "read"})
}
