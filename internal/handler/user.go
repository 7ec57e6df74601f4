package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
	"github.com/user/watchscape/internal/service"
	"github.com/user/watchscape/internal/utils"
)

type registerRequest struct {
	UID     string `json:"uid" binding:"required"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Age     int    `json:"age"`
}

// Register 注册用户资料，身份由外部服务提供
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	user := &model.User{
		UID:     req.UID,
		Email:   req.Email,
		Name:    req.Name,
		Country: req.Country,
		Age:     req.Age,
	}
	if err := h.Repos.User.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			utils.BadRequest(c, "User already exists")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(201, gin.H{"message": "User saved"})
}

// GetUser 按 UID 获取用户资料
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Repos.User.GetByUID(c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, user)
}

// SearchUsers 昵称/邮箱搜索，最多返回 20 条
func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(200, []*model.User{})
		return
	}
	users, err := h.Repos.User.Search(query, 20)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, users)
}

type followRequest struct {
	FollowerUID string `json:"followerUid" binding:"required"`
}

// ToggleFollow 切换关注状态，关注成功时通知被关注人
func (h *Handler) ToggleFollow(c *gin.Context) {
	targetUID := c.Param("uid")

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}
	if req.FollowerUID == targetUID {
		utils.BadRequest(c, "You cannot follow yourself")
		return
	}

	if _, err := h.Repos.User.GetByUID(targetUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	following, err := h.Repos.Follow.Toggle(req.FollowerUID, targetUID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	// 关注边已落库，通知失败只记日志，不能让调用方误以为关注没成功
	if following {
		if err := h.Notify.Notify(service.NotifyInput{
			RecipientUID: targetUID,
			SenderUID:    req.FollowerUID,
			Type:         model.NotifyTypeFollow,
			Message:      "started following you",
		}); err != nil {
			log.Printf("[用户] 关注通知失败 (target: %s): %v", targetUID, err)
		}
	}

	c.JSON(200, gin.H{"following": following})
}

// Followers 粉丝列表
func (h *Handler) Followers(c *gin.Context) {
	h.listEdgeUsers(c, h.Repos.Follow.FollowersOf)
}

// Following 关注列表
func (h *Handler) Following(c *gin.Context) {
	h.listEdgeUsers(c, h.Repos.Follow.FollowingOf)
}

func (h *Handler) listEdgeUsers(c *gin.Context, edges func(string) ([]string, error)) {
	uids, err := edges(c.Param("uid"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	users, err := h.Repos.User.GetByUIDs(uids)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, users)
}

type profileResponse struct {
	UID              string              `json:"uid"`
	Email            string              `json:"email"`
	Name             string              `json:"name"`
	Country          string              `json:"country,omitempty"`
	Age              int                 `json:"age,omitempty"`
	FollowersCount   int                 `json:"followersCount"`
	FollowingCount   int                 `json:"followingCount"`
	FollowedByViewer bool                `json:"followedByViewer"`
	PinnedFilms      []*model.PinnedFilm `json:"pinnedFilms"`
	WatchlistCount   int                 `json:"watchlistCount"`
	WatchedCount     int                 `json:"watchedCount"`
	Posts            []*model.Post       `json:"posts"`
}

// Profile 聚合主页：资料、关系计数、置顶影片、片单计数、近期帖子
func (h *Handler) Profile(c *gin.Context) {
	uid := c.Param("uid")

	user, err := h.Repos.User.GetByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	resp := profileResponse{
		UID:     user.UID,
		Email:   user.Email,
		Name:    user.Name,
		Country: user.Country,
		Age:     user.Age,
	}

	if resp.FollowersCount, err = h.Repos.Follow.CountFollowers(uid); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if resp.FollowingCount, err = h.Repos.Follow.CountFollowing(uid); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if viewer := c.Query("viewerUid"); viewer != "" && viewer != uid {
		if resp.FollowedByViewer, err = h.Repos.Follow.IsFollowing(viewer, uid); err != nil {
			utils.InternalServerError(c, "")
			return
		}
	}
	if resp.PinnedFilms, err = h.Repos.Pin.ListByUser(uid); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if resp.WatchlistCount, err = h.Repos.Collection.CountByUserAndStatus(uid, model.StatusWatchlist); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if resp.WatchedCount, err = h.Repos.Collection.CountByUserAndStatus(uid, model.StatusWatched); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if resp.Posts, err = h.Repos.Post.ListByUser(uid, 20); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(200, resp)
}

type pinRequest struct {
	TmdbID     int    `json:"tmdbId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	PosterPath string `json:"posterPath"`
}

// PinFilm 置顶影片，上限 6 部
func (h *Handler) PinFilm(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	pin := &model.PinnedFilm{
		UserID:     c.Param("uid"),
		TmdbID:     req.TmdbID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	}
	if err := h.Repos.Pin.Pin(pin); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			utils.BadRequest(c, "Film already pinned")
		case errors.Is(err, repository.ErrPinLimit):
			utils.BadRequest(c, "You can pin up to 6 films")
		default:
			utils.InternalServerError(c, "")
		}
		return
	}
	c.JSON(200, pin)
}

// UnpinFilm 取消置顶
func (h *Handler) UnpinFilm(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		utils.BadRequest(c, "Invalid film id")
		return
	}
	if err := h.Repos.Pin.Unpin(c.Param("uid"), tmdbID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Pinned film not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(200, gin.H{"message": "Film unpinned"})
}
