package model

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
	"time"
)

// 帖子类型
const (
	PostTypeText          = "text"
	PostTypeMovieActivity = "movie_activity"
)

// StringSet 以 JSON 数组存储的去重字符串集合（点赞用户 UID）
type StringSet []string

// Has 判断成员
func (s StringSet) Has(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// With 返回加入成员后的新集合，已存在则原样返回
func (s StringSet) With(v string) StringSet {
	if s.Has(v) {
		return s
	}
	return append(append(StringSet{}, s...), v)
}

// Without 返回移除成员后的新集合
func (s StringSet) Without(v string) StringSet {
	out := StringSet{}
	for _, item := range s {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// Value 以 JSON 文本落库，空集合落 []
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	return json.Marshal(s)
}

// Scan 从 JSON 文本还原
func (s *StringSet) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Comment 帖子评论，创建后不可修改。
// UserName 是写入时解析的昵称快照，允许过期。
type Comment struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentList 帖子内嵌的评论列表。
// 排序约定在写入侧维护：每次追加后都按时间倒序重排再落库。
type CommentList []Comment

// SortNewestFirst 按评论时间倒序稳定排序
func (l CommentList) SortNewestFirst() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].CreatedAt.After(l[j].CreatedAt)
	})
}

// Value 以 JSON 文本落库，空列表落 []
func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		l = CommentList{}
	}
	return json.Marshal(l)
}

// Scan 从 JSON 文本还原
func (l *CommentList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// MovieActivity 观影动态内容：把某部影片标记为想看/已看
type MovieActivity struct {
	Action string   `json:"action"` // watchlist / watched
	Movie  MovieRef `json:"movie"`
}

// Value 以 JSON 文本落库
func (a *MovieActivity) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan 从 JSON 文本还原
func (a *MovieActivity) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// Post 信息流帖子。文本帖与观影动态二选一：
// 文本帖 Text 必填、可附带 Movie 快照；
// 观影动态由片单操作自动生成，内容在 MovieActivity 里。
// Version 为乐观并发版本号，点赞/评论的读改写都要带版本条件更新。
type Post struct {
	ID            int            `json:"_id" gorm:"primaryKey"`
	UserID        string         `json:"userId" gorm:"size:128;index"`
	Username      string         `json:"username"` // 发帖时的昵称快照
	Type          string         `json:"type" gorm:"size:32;default:text"`
	Text          string         `json:"text,omitempty"`
	Movie         *MovieRef      `json:"movie,omitempty" gorm:"type:text"`
	MovieActivity *MovieActivity `json:"movieActivity,omitempty" gorm:"type:text"`
	Likes         StringSet      `json:"likes" gorm:"type:text"`
	Comments      CommentList    `json:"comments" gorm:"type:text"`
	Version       int            `json:"-" gorm:"default:0"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time      `json:"-"`
}
