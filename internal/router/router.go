package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dcover/internal/config"
	apperrors "dcover/internal/errors"
	"dcover/internal/handler"
	authmw "dcover/internal/middleware"
)

// Handlers groups every resource handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Song         *handler.SongHandler
	Album        *handler.AlbumHandler
	Comment      *handler.CommentHandler
	Follow       *handler.FollowHandler
	User         *handler.UserHandler
	Banner       *handler.BannerHandler
	Notification *handler.NotificationHandler
	Message      *handler.MessageHandler
	Upload       *handler.UploadHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, authn *authmw.Authenticator, h Handlers) {
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	required := authn.Required()
	optional := authn.Optional()
	admin := []echo.MiddlewareFunc{required, authmw.RequireAdmin}

	api := e.Group("/api")

	api.POST("/auth/google", h.Auth.GoogleAuth)
	api.GET("/auth/me", h.Auth.Me, required)
	api.POST("/auth/logout", h.Auth.Logout, required)

	songs := api.Group("/songs")
	songs.GET("", h.Song.ListSongs)
	songs.POST("", h.Song.CreateSong, required)
	songs.GET("/user/:userId", h.Song.ListUserSongs, optional)
	songs.GET("/album/:albumId", h.Song.ListAlbumSongs, optional)
	songs.GET("/:id", h.Song.GetSong, optional)
	songs.PATCH("/:id", h.Song.UpdateSong, required)
	songs.PATCH("/:id/visibility", h.Song.SetVisibility, required)
	songs.GET("/:id/like", h.Song.LikeStatus, required)
	songs.POST("/:id/like", h.Song.ToggleLike, required)
	songs.POST("/:id/play", h.Song.Play)
	songs.DELETE("/:id", h.Song.DeleteSong, required)

	albums := api.Group("/albums")
	albums.GET("", h.Album.ListAlbums)
	albums.POST("", h.Album.CreateAlbum, required)
	albums.GET("/user/:userId", h.Album.ListUserAlbums)
	albums.GET("/:id", h.Album.GetAlbum)
	albums.PATCH("/:id", h.Album.UpdateAlbum, required)
	albums.PATCH("/:id/cover", h.Album.SetCover, required)
	albums.DELETE("/:id", h.Album.DeleteAlbum, required)

	comments := api.Group("/comments")
	comments.GET("/song/:songId", h.Comment.ListComments)
	comments.POST("", h.Comment.CreateComment, required)
	comments.DELETE("/:id", h.Comment.DeleteComment, required)

	follows := api.Group("/follows")
	follows.GET("/check/:id", h.Follow.Status, required)
	follows.GET("/followers/:id", h.Follow.Followers)
	follows.GET("/following/:id", h.Follow.Following)
	follows.POST("/:id", h.Follow.Follow, required)
	follows.DELETE("/:id", h.Follow.Unfollow, required)

	users := api.Group("/users")
	users.GET("", h.User.ListUsers, admin...)
	users.GET("/suggestions", h.User.Suggestions, required)
	users.GET("/search", h.User.Search)
	users.PATCH("/profile", h.User.UpdateProfile, required)
	users.GET("/username/:username", h.User.GetProfileByUsername)
	users.GET("/:id", h.User.GetProfile)
	users.PATCH("/:id/suspend", h.User.Suspend, admin...)
	users.PATCH("/:id/role", h.User.SetRole, admin...)

	banners := api.Group("/banners")
	banners.GET("", h.Banner.ListActive)
	banners.GET("/all", h.Banner.ListAll, admin...)
	banners.POST("", h.Banner.CreateBanner, admin...)
	banners.PATCH("/:id", h.Banner.UpdateBanner, admin...)
	banners.PATCH("/:id/toggle", h.Banner.ToggleBanner, admin...)
	banners.DELETE("/:id", h.Banner.DeleteBanner, admin...)

	notifications := api.Group("/notifications", required)
	notifications.GET("", h.Notification.List)
	notifications.GET("/unread-count", h.Notification.UnreadCount)
	notifications.PATCH("/read-all", h.Notification.MarkAllRead)
	notifications.PATCH("/:id/read", h.Notification.MarkRead)

	messages := api.Group("/messages", required)
	messages.POST("", h.Message.Send)
	messages.GET("/conversations", h.Message.Conversations)
	messages.GET("/conversations/:id", h.Message.Thread)
	messages.GET("/with/:userId", h.Message.With)
	messages.GET("/unread-count", h.Message.UnreadCount)

	upload := api.Group("/upload", required)
	upload.POST("/audio", h.Upload.UploadAudio)
	upload.POST("/image", h.Upload.UploadImage)
}
