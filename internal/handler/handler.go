package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/user/watchscape/internal/config"
	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
	"github.com/user/watchscape/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	TMDB   *service.TMDBService
	Notify *service.NotificationService
	Feed   *service.FeedService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	tmdb := service.NewTMDBService(cfg)
	notify := service.NewNotificationService(repos)
	feed := service.NewFeedService(repos, notify, tmdb)

	return &Handler{
		Repos:  repos,
		Config: cfg,
		TMDB:   tmdb,
		Notify: notify,
		Feed:   feed,
	}
}

// ListStatusValidation 片单状态枚举校验，注册名 liststatus
func ListStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.StatusWatchlist, model.StatusWatched:
		return true
	}
	return false
}
