package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 注册用户，UID 重复返回 ErrDuplicateEntry
func (r *UserRepository) Create(u *model.User) error {
	var count int64
	if err := r.db.Model(&model.User{}).Where("uid = ?", u.UID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEntry
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return r.db.Create(u).Error
}

// GetByUID 按 UID 查找，不存在返回 ErrNotFound
func (r *UserRepository) GetByUID(uid string) (*model.User, error) {
	var u model.User
	err := r.db.Where("uid = ?", uid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Search 昵称/邮箱子串搜索，大小写不敏感
func (r *UserRepository) Search(query string, limit int) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("name").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// GetByUIDs 批量按 UID 查找（粉丝/关注列表展示用）
func (r *UserRepository) GetByUIDs(uids []string) ([]*model.User, error) {
	if len(uids) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	err := r.db.Where("uid IN ?", uids).Find(&users).Error
	return users, err
}
