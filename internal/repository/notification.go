package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 写入一条通知
func (r *NotificationRepository) Create(n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return r.db.Create(n).Error
}

// ListByRecipient 按接收人分页获取，最新在前。
// offset/limit 分页，并发插入时页间可能有漂移，属已知行为。
func (r *NotificationRepository) ListByRecipient(uid string, page, limit int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var list []*model.Notification
	err := r.db.Where("recipient_uid = ?", uid).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// UnreadCount 未读数
func (r *NotificationRepository) UnreadCount(uid string) (int, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("recipient_uid = ? AND is_read = ?", uid, false).
		Count(&count).Error
	return int(count), err
}

// MarkRead 单条标记已读
func (r *NotificationRepository) MarkRead(id int) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}

// MarkAllRead 全部标记已读
func (r *NotificationRepository) MarkAllRead(uid string) error {
	return r.db.Model(&model.Notification{}).
		Where("recipient_uid = ? AND is_read = ?", uid, false).
		UpdateColumn("is_read", true).Error
}
