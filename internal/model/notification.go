package model

import (
	"time"
)

// 通知类型
const (
	NotifyTypeLike          = "like"
	NotifyTypeComment       = "comment"
	NotifyTypeShare         = "share"
	NotifyTypeFollow        = "follow"
	NotifyTypePost          = "post"
	NotifyTypeMovieActivity = "movie_activity"
)

// Notification 站内通知。由动作方触发、归接收方所有，
// SenderName 是创建时的昵称快照。自己触发的动作不产生通知。
type Notification struct {
	ID           int       `json:"_id" gorm:"primaryKey"`
	RecipientUID string    `json:"recipientUid" gorm:"size:128;index:idx_notify_recipient;index:idx_notify_unread"`
	SenderUID    string    `json:"senderUid" gorm:"size:128"`
	SenderName   string    `json:"senderName"`
	Type         string    `json:"type" gorm:"size:32"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead" gorm:"default:false;index:idx_notify_unread"`
	PostID       string    `json:"postId,omitempty"`
	MovieTitle   string    `json:"movieTitle,omitempty"`
	MovieAction  string    `json:"movieAction,omitempty"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index:idx_notify_recipient"`
}
