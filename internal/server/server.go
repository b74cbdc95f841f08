// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "momentcanvas/docs" // swagger docs
	"momentcanvas/internal/cache"
	"momentcanvas/internal/config"
	"momentcanvas/internal/database"
	"momentcanvas/internal/middleware"
	"momentcanvas/internal/models"
	"momentcanvas/internal/repository"
	"momentcanvas/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo   repository.UserRepository
	diaryRepo  repository.DiaryRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository

	visibilityService *service.VisibilityService
	diaryService      *service.DiaryService
	followService     *service.FollowService
	likeService       *service.LikeService
	userService       *service.UserService
	authService       *service.AuthService
	imageService      *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	prom := middleware.InitMetrics("momentcanvas-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		diaryRepo:      diaryRepo,
		followRepo:     followRepo,
		likeRepo:       likeRepo,
	}

	server.visibilityService = service.NewVisibilityService(followRepo)
	server.diaryService = service.NewDiaryService(diaryRepo, server.visibilityService)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.likeService = service.NewLikeService(likeRepo, diaryRepo, server.visibilityService)
	server.userService = service.NewUserService(userRepo)
	server.imageService = service.NewImageService(cfg)

	if redisClient != nil {
		tokens := cache.NewRefreshTokenStore(redisClient, cfg.RefreshTokenTTL)
		codes := cache.NewExchangeCodeStore(redisClient, 5*time.Minute)
		server.authService = service.NewAuthService(userRepo, tokens, codes, cfg)
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so browser
	// clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
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
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)
	auth.Post("/reissue", s.Reissue)
	auth.Post("/exchange", s.ExchangeToken)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Public image serving by saved name
	api.Get("/images/:name", s.ServeImage)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Delete("/me", s.Withdraw)
	users.Post("/me/profile-image", s.UploadProfileImage)
	users.Get("/nickname-available", s.CheckNickname)

	// Diary routes. Specific /:id/:resource routes BEFORE generic /:id.
	diaries := protected.Group("/diaries")
	diaries.Post("/", s.CreateDiary)
	diaries.Get("/", s.ListDiaries)
	diaries.Get("/dates", s.GetWrittenDates)
	diaries.Post("/:id/recover", s.RecoverDiary)
	diaries.Post("/:id/image", s.UploadDiaryImage)
	diaries.Post("/:id/like", s.LikeDiary)
	diaries.Delete("/:id/like", s.UnlikeDiary)
	diaries.Get("/:id", s.GetDiary)
	diaries.Put("/:id", s.UpdateDiary)
	diaries.Delete("/:id", s.DeleteDiary)

	// Follow routes
	follows := protected.Group("/follows")
	follows.Get("/followers", s.GetFollowers)
	follows.Get("/following", s.GetFollowing)
	follows.Post("/:userId", s.Follow)
	follows.Delete("/:userId", s.Unfollow)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Put("/users/:userId/status", s.ChangeUserStatus)
}

// Shutdown releases server-held resources. The Fiber app itself is shut down
// by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			slog.WarnContext(ctx, "error closing redis client", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			return cerr
		}
	}
	return nil
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
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
		// Refresh-token sessions need Redis, so readiness requires it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
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

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		// The role claim in the token can be stale; check the record.
		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if user.Role != models.UserRoleAdmin {
			return models.RespondWithError(c,
				models.NewForbiddenError("Admin privileges required"))
		}

		c.Locals("userRole", string(user.Role))
		return c.Next()
	}
}
