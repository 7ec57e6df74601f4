package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 片单状态
const (
	StatusWatchlist = "watchlist"
	StatusWatched   = "watched"
)

// MovieRef 目录元数据快照，嵌入到帖子/动态里。
// 可能不完整或过期，读取时会尝试用目录接口补全，补全失败则原样返回。
type MovieRef struct {
	TmdbID      string `json:"tmdbId"`
	Title       string `json:"title"`
	PosterPath  string `json:"posterPath"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Overview    string `json:"overview,omitempty"`
}

// Value 以 JSON 文本落库
func (m *MovieRef) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 从 JSON 文本还原
func (m *MovieRef) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// CollectionEntry 用户片单条目。
// (user, tmdbId, status) 唯一，重复添加会被拒绝而不是合并。
type CollectionEntry struct {
	ID          int       `json:"_id" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"size:128;uniqueIndex:idx_collection_entry"`
	TmdbID      int       `json:"tmdbId" gorm:"uniqueIndex:idx_collection_entry"`
	Status      string    `json:"status" gorm:"size:16;uniqueIndex:idx_collection_entry"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"posterPath"`
	ReleaseDate string    `json:"releaseDate"`
	Overview    string    `json:"overview,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PinnedFilm 主页置顶展示的影片，每人最多 6 部。
type PinnedFilm struct {
	ID         int       `json:"_id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"size:128;uniqueIndex:idx_pinned_film"`
	TmdbID     int       `json:"tmdbId" gorm:"uniqueIndex:idx_pinned_film"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MaxPinnedFilms 置顶影片上限
const MaxPinnedFilms = 6

// scanJSON 数据库 JSON 列的通用反序列化
func scanJSON(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("无法将 %T 解析为 JSON 列", value)
	}
}
