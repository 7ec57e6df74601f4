package model

import (
	"time"
)

// User 用户资料。身份由外部服务签发，UID 为不透明且稳定的标识，
// 本服务只负责资料与关系数据，不存储任何凭证。
type User struct {
	ID        int       `json:"-" gorm:"primaryKey"`
	UID       string    `json:"uid" gorm:"size:128;uniqueIndex"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName 展示名解析顺序：昵称 > 邮箱 > 兜底
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Someone"
}

// Follow 关注边：Follower 关注了 Followed。
// (follower, followed) 唯一，关注/取关由同一个切换操作维护，
// 因此 A.following 与 B.followers 始终对称。
type Follow struct {
	ID          int       `json:"id"`
	FollowerUID string    `json:"followerUid" gorm:"size:128;uniqueIndex:idx_follow_edge;index"`
	FollowedUID string    `json:"followedUid" gorm:"size:128;uniqueIndex:idx_follow_edge;index"`
	CreatedAt   time.Time `json:"created_at"`
}
