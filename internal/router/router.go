package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/watchscape/internal/handler"
)

// RegisterRoutes 注册所有路由。路径是对外契约，不要改动。
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 用户与关系 ====================
	users := api.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", h.SearchUsers)
		users.GET("/:uid", h.GetUser)
		users.GET("/:uid/profile", h.Profile)
		users.POST("/:uid/follow", h.ToggleFollow)
		users.GET("/:uid/followers", h.Followers)
		users.GET("/:uid/following", h.Following)
		users.PATCH("/:uid/pin-film", h.PinFilm)
		users.DELETE("/:uid/pin-film/:tmdbId", h.UnpinFilm)
	}

	// ==================== 片单与目录 ====================
	movies := api.Group("/movies")
	{
		movies.GET("/search", h.SearchMovies)
		movies.GET("/popular", h.PopularMovies)
		movies.GET("/stats", h.MovieStats)
		movies.GET("", h.ListMovies)
		movies.POST("", h.AddMovie)
		movies.PUT("/:id", h.UpdateMovie)
		movies.DELETE("/:id", h.RemoveMovie)
	}

	// ==================== 信息流 ====================
	posts := api.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.POST("", h.CreatePost)
		posts.POST("/movie-activity", h.CreateMovieActivity)
		posts.GET("/:id", h.GetPost)
		posts.PUT("/:id", h.EditPost)
		posts.DELETE("/:id", h.DeletePost)
		posts.PUT("/:id/like", h.ToggleLike)
		posts.POST("/:id/comment", h.AddComment)
		posts.POST("/:id/share", h.SharePost)
	}

	// ==================== 通知 ====================
	// 单条已读接口与按用户接口共用 :uid 段（gin 同层通配符必须同名）
	notifications := api.Group("/notifications")
	{
		notifications.GET("/:uid", h.ListNotifications)
		notifications.GET("/:uid/unread-count", h.UnreadCount)
		notifications.PATCH("/:uid/read", h.MarkNotificationRead)
		notifications.PATCH("/:uid/read-all", h.MarkAllNotificationsRead)
	}
}
