package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/user/watchscape/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Toggle 切换关注边，返回切换后的关注状态。
// 同一条边只维护在 follows 表里，关注方的 following 与被关注方的
// followers 天然对称。
func (r *FollowRepository) Toggle(followerUID, followedUID string) (bool, error) {
	following, err := r.IsFollowing(followerUID, followedUID)
	if err != nil {
		return false, err
	}
	if following {
		err = r.db.Where("follower_uid = ? AND followed_uid = ?", followerUID, followedUID).
			Delete(&model.Follow{}).Error
		return false, err
	}
	edge := &model.Follow{
		FollowerUID: followerUID,
		FollowedUID: followedUID,
		CreatedAt:   time.Now(),
	}
	// 并发重复关注靠唯一索引兜底
	err = r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	return err == nil, err
}

// IsFollowing 判断 follower 是否关注了 followed
func (r *FollowRepository) IsFollowing(followerUID, followedUID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_uid = ? AND followed_uid = ?", followerUID, followedUID).
		Count(&count).Error
	return count > 0, err
}

// FollowersOf 获取粉丝 UID 列表
func (r *FollowRepository) FollowersOf(uid string) ([]string, error) {
	var uids []string
	err := r.db.Model(&model.Follow{}).
		Where("followed_uid = ?", uid).
		Pluck("follower_uid", &uids).Error
	return uids, err
}

// FollowingOf 获取关注对象 UID 列表
func (r *FollowRepository) FollowingOf(uid string) ([]string, error) {
	var uids []string
	err := r.db.Model(&model.Follow{}).
		Where("follower_uid = ?", uid).
		Pluck("followed_uid", &uids).Error
	return uids, err
}

// CountFollowers 统计粉丝数
func (r *FollowRepository) CountFollowers(uid string) (int, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("followed_uid = ?", uid).Count(&count).Error
	return int(count), err
}

// CountFollowing 统计关注数
func (r *FollowRepository) CountFollowing(uid string) (int, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_uid = ?", uid).Count(&count).Error
	return int(count), err
}
