package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

type PinRepository struct {
	db *gorm.DB
}

func NewPinRepository(db *gorm.DB) *PinRepository {
	return &PinRepository{db: db}
}

// Pin 置顶影片。重复返回 ErrDuplicateEntry，超过上限返回 ErrPinLimit。
func (r *PinRepository) Pin(p *model.PinnedFilm) error {
	var count int64
	err := r.db.Model(&model.PinnedFilm{}).
		Where("user_id = ? AND tmdb_id = ?", p.UserID, p.TmdbID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEntry
	}

	total, err := r.CountByUser(p.UserID)
	if err != nil {
		return err
	}
	if total >= model.MaxPinnedFilms {
		return ErrPinLimit
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return r.db.Create(p).Error
}

// Unpin 取消置顶，不存在返回 ErrNotFound
func (r *PinRepository) Unpin(uid string, tmdbID int) error {
	res := r.db.Where("user_id = ? AND tmdb_id = ?", uid, tmdbID).Delete(&model.PinnedFilm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser 获取置顶影片，按置顶先后排序
func (r *PinRepository) ListByUser(uid string) ([]*model.PinnedFilm, error) {
	var pins []*model.PinnedFilm
	err := r.db.Where("user_id = ?", uid).
		Order("created_at ASC").
		Find(&pins).Error
	return pins, err
}

// CountByUser 统计置顶数量
func (r *PinRepository) CountByUser(uid string) (int, error) {
	var count int64
	err := r.db.Model(&model.PinnedFilm{}).Where("user_id = ?", uid).Count(&count).Error
	return int(count), err
}
