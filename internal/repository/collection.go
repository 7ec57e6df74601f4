package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Add 添加片单条目，(user, tmdbId, status) 已存在则返回 ErrDuplicateEntry
func (r *CollectionRepository) Add(e *model.CollectionEntry) error {
	var count int64
	err := r.db.Model(&model.CollectionEntry{}).
		Where("user_id = ? AND tmdb_id = ? AND status = ?", e.UserID, e.TmdbID, e.Status).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEntry
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return r.db.Create(e).Error
}

// GetByID 按主键查找，不存在返回 ErrNotFound
func (r *CollectionRepository) GetByID(id int) (*model.CollectionEntry, error) {
	var e model.CollectionEntry
	err := r.db.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUserAndStatus 获取某用户某状态下的全部条目
func (r *CollectionRepository) ListByUserAndStatus(uid, status string) ([]*model.CollectionEntry, error) {
	var entries []*model.CollectionEntry
	err := r.db.Where("user_id = ? AND status = ?", uid, status).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// SetStatus 原地变更条目状态。唯一路径，同时校验目标状态的唯一性：
// 目标 (user, tmdbId, status) 已存在时拒绝并保持原状。
func (r *CollectionRepository) SetStatus(id int, status string) (*model.CollectionEntry, error) {
	entry, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == status {
		return entry, nil
	}

	var count int64
	err = r.db.Model(&model.CollectionEntry{}).
		Where("user_id = ? AND tmdb_id = ? AND status = ? AND id <> ?", entry.UserID, entry.TmdbID, status, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEntry
	}

	entry.Status = status
	entry.UpdatedAt = time.Now()
	err = r.db.Model(&model.CollectionEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": entry.Status, "updated_at": entry.UpdatedAt}).Error
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove 删除条目，不存在返回 ErrNotFound
func (r *CollectionRepository) Remove(id int) error {
	res := r.db.Delete(&model.CollectionEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUserAndStatus 统计某状态下的条目数
func (r *CollectionRepository) CountByUserAndStatus(uid, status string) (int, error) {
	var count int64
	err := r.db.Model(&model.CollectionEntry{}).
		Where("user_id = ? AND status = ?", uid, status).
		Count(&count).Error
	return int(count), err
}

// Stats 片单统计：想看总数 + 近 30 天标记过的已看数。
// 30 天窗口按更新时间算，窗口外被重新确认的条目不计入。
func (r *CollectionRepository) Stats(uid string) (watchlist int, watchedRecent int, err error) {
	watchlist, err = r.CountByUserAndStatus(uid, model.StatusWatchlist)
	if err != nil {
		return 0, 0, err
	}

	var count int64
	since := time.Now().AddDate(0, 0, -30)
	err = r.db.Model(&model.CollectionEntry{}).
		Where("user_id = ? AND status = ? AND updated_at >= ?", uid, model.StatusWatched, since).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}
	return watchlist, int(count), nil
}
