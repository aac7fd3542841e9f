package router

import (
	"vidverse/internal/api/handler"
	"vidverse/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由需要的全部 handler
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Search       *handler.SearchHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
	Tweet        *handler.TweetHandler
	Dashboard    *handler.DashboardHandler
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h *Handlers, checker middleware.RevocationChecker) {
	authRequired := middleware.RequireAuth(checker)
	authOptional := middleware.OptionalAuth(checker)

	v1 := r.Group("/api/v1")

	v1.GET("/healthcheck", handler.HealthCheck)

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.POST("/refresh-token", h.Auth.RefreshToken)
		users.GET("/c/:username", authOptional, h.User.ChannelProfile)

		usersAuth := users.Group("", authRequired)
		{
			usersAuth.POST("/logout", h.Auth.Logout)
			usersAuth.POST("/change-password", h.User.ChangePassword)
			usersAuth.GET("/current-user", h.User.CurrentUser)
			usersAuth.PATCH("/update-account", h.User.UpdateAccount)
			usersAuth.PATCH("/avatar", h.User.UpdateAvatar)
			usersAuth.PATCH("/cover-image", h.User.UpdateCoverImage)
			usersAuth.GET("/history", h.User.WatchHistory)
			usersAuth.DELETE("/history", h.User.ClearWatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（登录时识别当前用户）
		videos.GET("", h.Video.List)
		videos.GET("/search", h.Search.SearchVideos)
		videos.GET("/:videoId", authOptional, h.Video.Get)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", h.Video.Publish)
			videosAuth.PATCH("/:videoId", h.Video.Update)
			videosAuth.DELETE("/:videoId", h.Video.Delete)
			videosAuth.PATCH("/toggle/publish/:videoId", h.Video.TogglePublish)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", authOptional, h.Comment.List)

		commentsAuth := comments.Group("", authRequired)
		{
			commentsAuth.POST("/:videoId", h.Comment.Add)
			commentsAuth.PATCH("/c/:commentId", h.Comment.Update)
			commentsAuth.DELETE("/c/:commentId", h.Comment.Delete)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.LikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", authRequired)
	{
		subscriptions.POST("/c/:channelId", h.Subscription.Toggle)
		subscriptions.GET("/c/:channelId", h.Subscription.Subscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.SubscribedChannels)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlist", authRequired)
	{
		playlists.POST("", h.Playlist.Create)
		playlists.GET("/user/:userId", h.Playlist.ListByUser)
		playlists.GET("/:playlistId", h.Playlist.Get)
		playlists.PATCH("/:playlistId", h.Playlist.Update)
		playlists.DELETE("/:playlistId", h.Playlist.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets", authRequired)
	{
		tweets.POST("", h.Tweet.Create)
		tweets.GET("/user/:userId", h.Tweet.ListByUser)
		tweets.PATCH("/:tweetId", h.Tweet.Update)
		tweets.DELETE("/:tweetId", h.Tweet.Delete)
	}

	// --- 数据面板 ---
	dashboard := v1.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}
}
