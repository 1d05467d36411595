package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	_ "dcover/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"dcover/internal/auth"
	"dcover/internal/cache"
	"dcover/internal/config"
	"dcover/internal/db"
	"dcover/internal/handler"
	"dcover/internal/middleware"
	"dcover/internal/repository"
	"dcover/internal/router"
	"dcover/internal/service"
	"dcover/internal/storage"
)

// @title dcover API
// @version 1.0
// @description Music cover sharing: songs, albums, likes, comments, follows, messages and notifications.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.GommonLevel())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		e.Logger.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		e.Logger.Warn("RESET_DB=true, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			e.Logger.Fatalf("reset database: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		e.Logger.Fatalf("%v", err)
	}
	reader, err := db.Reader(gormDB)
	if err != nil {
		e.Logger.Fatalf("database reader: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		e.Logger.Warnf("redis unavailable, token revocation disabled until it recovers: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		e.Logger.Fatalf("upload storage: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB, reader)
	songRepo := repository.NewSongRepository(gormDB, reader)
	albumRepo := repository.NewAlbumRepository(gormDB, reader)
	commentRepo := repository.NewCommentRepository(gormDB, reader)
	followRepo := repository.NewFollowRepository(gormDB, reader)
	bannerRepo := repository.NewBannerRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB, reader)
	messageRepo := repository.NewMessageRepository(gormDB, reader)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	var verifier auth.IdentityVerifier
	if cfg.FirebaseCredentialsPath != "" {
		fv, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			e.Logger.Fatalf("firebase: %v", err)
		}
		verifier = fv
	}
	authn := middleware.NewAuthenticator(userRepo, tokenStore, jwtService.Secret())

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, verifier, cfg.IsAdminEmail)
	albumService := service.NewAlbumService(albumRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, songRepo, userRepo, notificationService)
	followService := service.NewFollowService(followRepo, userRepo, notificationService)
	userService := service.NewUserService(userRepo)
	bannerService := service.NewBannerService(bannerRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationService)
	uploadService := service.NewUploadService(store, cfg.PublicBaseURL, service.UploadLimits{
		AudioMB: cfg.MaxAudioUploadMB,
		ImageMB: cfg.MaxImageUploadMB,
	})
	songService := service.NewSongService(songRepo, albumRepo, userRepo, notificationService, uploadService)

	// Register routes
	router.Register(e, cfg, authn, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Song:         handler.NewSongHandler(songService),
		Album:        handler.NewAlbumHandler(albumService),
		Comment:      handler.NewCommentHandler(commentService),
		Follow:       handler.NewFollowHandler(followService),
		User:         handler.NewUserHandler(userService),
		Banner:       handler.NewBannerHandler(bannerService),
		Notification: handler.NewNotificationHandler(notificationService),
		Message:      handler.NewMessageHandler(messageService),
		Upload:       handler.NewUploadHandler(uploadService),
	})

	e.Logger.Infof("Swagger documentation available at: %s/swagger/index.html", swaggerBase(cfg))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatalf("server start: %v", err)
	}
}

// swaggerBase accepts SWAGGER_HOST with or without a scheme.
func swaggerBase(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		return "http://localhost:" + cfg.ServerPort
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/")
	}
	return "http://" + host
}
