package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
	"github.com/user/watchscape/internal/utils"
)

// SearchMovies 目录搜索代理
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "Query missing")
		return
	}
	results, err := h.TMDB.Search(query)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch movies")
		return
	}
	c.JSON(200, results)
}

// PopularMovies 热门影片代理
func (h *Handler) PopularMovies(c *gin.Context) {
	results, err := h.TMDB.Popular()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch movies")
		return
	}
	c.JSON(200, results)
}

type addMovieRequest struct {
	TmdbID      int    `json:"tmdbId" binding:"required"`
	Title       string `json:"title"`
	PosterPath  string `json:"posterPath"`
	ReleaseDate string `json:"releaseDate"`
	UserID      string `json:"userId" binding:"required"`
	Status      string `json:"status" binding:"required,liststatus"`
}

// AddMovie 添加片单条目（不带动态，纯片单入口）
func (h *Handler) AddMovie(c *gin.Context) {
	var req addMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	entry := &model.CollectionEntry{
		UserID:      req.UserID,
		TmdbID:      req.TmdbID,
		Status:      req.Status,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.Repos.Collection.Add(entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			utils.BadRequest(c, "Movie already in this list")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(201, entry)
}

// ListMovies 按用户+状态获取片单，逐条实时补全目录数据，
// 补全失败降级为已存快照。
func (h *Handler) ListMovies(c *gin.Context) {
	uid := c.Query("userId")
	status := c.Query("status")
	if uid == "" || status == "" {
		utils.BadRequest(c, "Missing parameters")
		return
	}

	entries, err := h.Repos.Collection.ListByUserAndStatus(uid, status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	for _, entry := range entries {
		details, err := h.TMDB.Details(strconv.Itoa(entry.TmdbID))
		if err != nil {
			continue
		}
		entry.Title = details.Title
		entry.PosterPath = details.PosterPath
		entry.ReleaseDate = details.ReleaseDate
		entry.Overview = details.Overview
	}
	c.JSON(200, entries)
}

type updateMovieRequest struct {
	Status string `json:"status" binding:"required,liststatus"`
}

// UpdateMovie 原地变更条目状态，目标状态已有同片条目时拒绝
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}
	var req updateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	entry, err := h.Repos.Collection.SetStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Movie not found")
		case errors.Is(err, repository.ErrDuplicateEntry):
			utils.BadRequest(c, "Movie already in this list")
		default:
			utils.InternalServerError(c, "Error updating movie")
		}
		return
	}
	c.JSON(200, entry)
}

// RemoveMovie 删除片单条目
func (h *Handler) RemoveMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}
	if err := h.Repos.Collection.Remove(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Movie not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{"message": "Movie removed"})
}

// MovieStats 片单统计：想看总数 + 近 30 天已看数
func (h *Handler) MovieStats(c *gin.Context) {
	uid := c.Query("userId")
	if uid == "" {
		utils.BadRequest(c, "Missing parameters")
		return
	}
	watchlist, watchedRecent, err := h.Repos.Collection.Stats(uid)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{
		"watchlistCount":     watchlist,
		"watchedRecentCount": watchedRecent,
	})
}
