package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

// casRetries 乐观并发更新的最大重试次数
const casRetries = 3

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 发布帖子
func (r *PostRepository) Create(p *model.Post) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Likes == nil {
		p.Likes = model.StringSet{}
	}
	if p.Comments == nil {
		p.Comments = model.CommentList{}
	}
	return r.db.Create(p).Error
}

// GetByID 按主键查找，不存在返回 ErrNotFound
func (r *PostRepository) GetByID(id int) (*model.Post, error) {
	var p model.Post
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll 全量信息流，最新在前
func (r *PostRepository) ListAll() ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// ListByUser 某用户的帖子，最新在前
func (r *PostRepository) ListByUser(uid string, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// UpdateText 修改帖子正文
func (r *PostRepository) UpdateText(id int, text string) error {
	res := r.db.Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除帖子
func (r *PostRepository) Delete(id int) error {
	res := r.db.Delete(&model.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike 切换点赞。读改写带版本号条件更新，
// 并发冲突时重读重试，避免相互覆盖丢失点赞。
// 返回切换后的点赞集合以及本次是否为新增点赞。
func (r *PostRepository) ToggleLike(id int, uid string) (model.StringSet, bool, error) {
	for i := 0; i < casRetries; i++ {
		post, err := r.GetByID(id)
		if err != nil {
			return nil, false, err
		}

		liked := !post.Likes.Has(uid)
		var likes model.StringSet
		if liked {
			likes = post.Likes.With(uid)
		} else {
			likes = post.Likes.Without(uid)
		}

		ok, err := r.casUpdate(id, post.Version, map[string]interface{}{"likes": likes})
		if err != nil {
			return nil, false, err
		}
		if ok {
			return likes, liked, nil
		}
	}
	return nil, false, ErrConflict
}

// AddComment 追加评论并按时间倒序重排后整体落库。
// 与点赞共用版本号，两个并发追加都会重排后各自持久化。
func (r *PostRepository) AddComment(id int, comment model.Comment) (model.CommentList, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	for i := 0; i < casRetries; i++ {
		post, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}

		comments := append(append(model.CommentList{}, post.Comments...), comment)
		comments.SortNewestFirst()

		ok, err := r.casUpdate(id, post.Version, map[string]interface{}{"comments": comments})
		if err != nil {
			return nil, err
		}
		if ok {
			return comments, nil
		}
	}
	return nil, ErrConflict
}

// casUpdate 带版本条件的更新，版本不匹配返回 false
func (r *PostRepository) casUpdate(id, version int, fields map[string]interface{}) (bool, error) {
	fields["version"] = version + 1
	fields["updated_at"] = time.Now()
	res := r.db.Model(&model.Post{}).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
