package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/watchscape/internal/utils"
)

// ListNotifications 分页获取通知，最新在前
func (h *Handler) ListNotifications(c *gin.Context) {
	uid := c.Param("uid")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.Repos.Notification.ListByRecipient(uid, page, limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{"notifications": list})
}

// UnreadCount 未读通知数
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.Repos.Notification.UnreadCount(c.Param("uid"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{"unreadCount": count})
}

// MarkNotificationRead 单条标记已读。
// 路由上与按用户的通知接口共用同名路径参数，这里按通知 ID 解析。
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("uid"))
	if err != nil {
		utils.BadRequest(c, "Invalid notification id")
		return
	}
	if err := h.Repos.Notification.MarkRead(id); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Message(c, "Notification marked as read")
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Repos.Notification.MarkAllRead(c.Param("uid")); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Message(c, "All notifications marked as read")
}
