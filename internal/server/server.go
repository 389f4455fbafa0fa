// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"videotube/internal/cache"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/service"
	"videotube/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "videotube-api"
	tokenAudience = "videotube-client"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	media          storage.MediaStore

	userRepo repository.UserRepository

	userService         *service.UserService
	profileService      *service.ProfileService
	subscriptionService *service.SubscriptionService
	videoService        *service.VideoService
	commentService      *service.CommentService
	tweetService        *service.TweetService
	likeService         *service.LikeService
	playlistService     *service.PlaylistService
	dashboardService    *service.DashboardService
}

// NewServer creates a server instance, establishing its own database, Redis
// and object-store connections.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	media, err := storage.NewMinioStore(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), media), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and bootstrap code that establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, media storage.MediaStore) *Server {
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db, videoRepo)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db, videoRepo)
	historyRepo := repository.NewHistoryRepository(db, videoRepo)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("videotube-api"),
		media:          media,
		userRepo:       userRepo,
	}
	server.userService = service.NewUserService(userRepo, media)
	server.profileService = service.NewProfileService(userRepo, subRepo)
	server.subscriptionService = service.NewSubscriptionService(userRepo, subRepo)
	server.videoService = service.NewVideoService(videoRepo, historyRepo, media)
	server.commentService = service.NewCommentService(commentRepo, videoRepo)
	server.tweetService = service.NewTweetService(tweetRepo, userRepo)
	server.likeService = service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	server.playlistService = service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	server.dashboardService = service.NewDashboardService(videoRepo, subRepo, likeRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "VideoTube Metrics Dashboard",
	}))

	// User routes: public auth surface first
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/refresh-token", s.RefreshToken)
	// Channel profiles are public; subscription state appears for signed-in viewers.
	users.Get("/channel/:username", s.GetChannelProfile)

	usersAuth := users.Group("", s.AuthRequired())
	usersAuth.Post("/logout", s.Logout)
	usersAuth.Post("/change-password", s.ChangePassword)
	usersAuth.Get("/current-user", s.GetCurrentUser)
	usersAuth.Patch("/update-details", s.UpdateAccountDetails)
	usersAuth.Patch("/update-avatar", s.UpdateAvatar)
	usersAuth.Patch("/update-cover-image", s.UpdateCoverImage)
	usersAuth.Get("/history", s.GetWatchHistory)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", s.GetAllVideos)
	videos.Get("/:id", s.GetVideoByID)

	videosAuth := videos.Group("", s.AuthRequired())
	videosAuth.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	videosAuth.Patch("/toggle/publish/:id", s.TogglePublishStatus)
	videosAuth.Patch("/:id", s.UpdateVideo)
	videosAuth.Delete("/:id", s.DeleteVideo)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/:videoId", s.GetVideoComments)

	commentsAuth := comments.Group("", s.AuthRequired())
	commentsAuth.Post("/:videoId", middleware.RateLimit(
		s.redis, 10, time.Minute, "add_comment"), s.AddComment)
	commentsAuth.Patch("/c/:commentId", s.UpdateComment)
	commentsAuth.Delete("/c/:commentId", s.DeleteComment)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Get("/user/:userId", s.GetUserTweets)

	tweetsAuth := tweets.Group("", s.AuthRequired())
	tweetsAuth.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_tweet"), s.CreateTweet)
	tweetsAuth.Patch("/:tweetId", s.UpdateTweet)
	tweetsAuth.Delete("/:tweetId", s.DeleteTweet)

	// Like routes
	likes := api.Group("/likes", s.AuthRequired())
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Get("/user/:userId", s.GetUserPlaylists)
	playlists.Get("/:playlistId", s.GetPlaylistByID)

	playlistsAuth := playlists.Group("", s.AuthRequired())
	playlistsAuth.Post("/", s.CreatePlaylist)
	playlistsAuth.Patch("/add/:videoId/:playlistId", s.AddVideoToPlaylist)
	playlistsAuth.Patch("/remove/:videoId/:playlistId", s.RemoveVideoFromPlaylist)
	playlistsAuth.Patch("/:playlistId", s.UpdatePlaylist)
	playlistsAuth.Delete("/:playlistId", s.DeletePlaylist)

	// Subscription routes
	subscriptions := api.Group("/subscriptions", s.AuthRequired())
	subscriptions.Get("/channels", s.GetMySubscribedChannels)
	subscriptions.Post("/c/:channelId", s.ToggleSubscription)
	subscriptions.Get("/c/:channelId", s.GetChannelSubscribers)
	subscriptions.Get("/u/:subscriberId", s.GetSubscribedChannels)

	// Dashboard routes (always self-scoped)
	dashboard := api.Group("/dashboard", s.AuthRequired())
	dashboard.Get("/stats", s.GetChannelStats)
	dashboard.Get("/videos", s.GetChannelVideos)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API serves without Redis, in degraded (uncached) mode.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.parseAccessToken(c.Context(), tokenString)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError(err.Error()))
		}

		userID := claims.userID
		c.Locals("userID", userID)
		c.Locals("jti", claims.jti)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

type accessClaims struct {
	userID uint
	jti    string
}

// parseAccessToken validates the signature, issuer, audience, subject and
// revocation state of an access token.
func (s *Server) parseAccessToken(ctx context.Context, tokenString string) (*accessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, fmt.Errorf("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, fmt.Errorf("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && s.redis != nil {
		blacklisted, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
		if err == nil && blacklisted > 0 {
			return nil, fmt.Errorf("Token has been revoked")
		}
	}

	return &accessClaims{userID: uint(userID), jti: jti}, nil
}

// optionalUserID extracts the viewer from the Authorization header without
// enforcing it. Anonymous requests get (0, false).
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	claims, err := s.parseAccessToken(c.Context(), parts[1])
	if err != nil {
		return 0, false
	}
	return claims.userID, true
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "VideoTube API",
		BodyLimit: int(s.config.MaxUploadBytes),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.Error("unhandled error", "error", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing Redis client", "error", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
