package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
	"github.com/user/watchscape/internal/service"
	"github.com/user/watchscape/internal/utils"
)

type createPostRequest struct {
	UserID string          `json:"userId" binding:"required"`
	Text   string          `json:"text" binding:"required"`
	Movie  *model.MovieRef `json:"movie"`
}

// CreatePost 发布文本帖
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing fields")
		return
	}

	post, err := h.Feed.CreateTextPost(req.UserID, req.Text, req.Movie)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(201, post)
}

type movieActivityRequest struct {
	TmdbID      int    `json:"tmdbId" binding:"required"`
	Title       string `json:"title"`
	PosterPath  string `json:"posterPath"`
	ReleaseDate string `json:"releaseDate"`
	Overview    string `json:"overview"`
	UserID      string `json:"userId" binding:"required"`
	Status      string `json:"status" binding:"required,liststatus"`
}

// CreateMovieActivity 片单添加 + 观影动态帖 + 粉丝通知
func (h *Handler) CreateMovieActivity(c *gin.Context) {
	var req movieActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	entry, err := h.Feed.CreateMovieActivity(service.MovieActivityInput{
		UserID:      req.UserID,
		TmdbID:      req.TmdbID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Overview:    req.Overview,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			utils.BadRequest(c, "Movie already in this list")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(201, entry)
}

// ListPosts 全量信息流
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.Feed.ListPosts()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, posts)
}

// GetPost 单帖详情
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	post, err := h.Feed.GetPost(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Post not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, post)
}

type actorRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// ToggleLike 切换点赞。重复调用会在赞/取消之间来回切换，
// 调用方不要把这个接口当成可盲目重试的幂等接口。
func (h *Handler) ToggleLike(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing fields")
		return
	}

	likes, err := h.Feed.ToggleLike(id, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Post not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{"likes": likes})
}

type commentRequest struct {
	UserID string `json:"userId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// AddComment 追加评论
func (h *Handler) AddComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Comment cannot be empty")
		return
	}

	comments, err := h.Feed.AddComment(id, req.UserID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			utils.NotFound(c, "User not found")
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Post not found")
		default:
			utils.InternalServerError(c, "")
		}
		return
	}
	c.JSON(200, gin.H{"comments": comments})
}

// SharePost 转发帖子
func (h *Handler) SharePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing fields")
		return
	}

	shared, err := h.Feed.Share(id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			utils.NotFound(c, "User not found")
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Post not found")
		default:
			utils.InternalServerError(c, "")
		}
		return
	}
	c.JSON(201, shared)
}

type editPostRequest struct {
	UserID string `json:"userId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// EditPost 修改帖子正文，服务端校验作者身份
func (h *Handler) EditPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing fields")
		return
	}

	if err := h.Feed.EditText(id, req.UserID, req.Text); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Post not found")
		case errors.Is(err, service.ErrNotOwner):
			utils.Forbidden(c, "Not your post")
		case errors.Is(err, service.ErrNotTextPost):
			utils.BadRequest(c, "Only text posts can be edited")
		default:
			utils.InternalServerError(c, "")
		}
		return
	}
	c.JSON(200, gin.H{"message": "Post updated"})
}

// DeletePost 删除帖子，服务端校验作者身份
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post id")
		return
	}
	uid := c.Query("userId")
	if uid == "" {
		utils.BadRequest(c, "Missing fields")
		return
	}

	if err := h.Feed.Delete(id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFound(c, "Post not found")
		case errors.Is(err, service.ErrNotOwner):
			utils.Forbidden(c, "Not your post")
		default:
			utils.InternalServerError(c, "")
		}
		return
	}
	c.JSON(200, gin.H{"message": "Post deleted"})
}
