// ===============================
// main.go - VideoHub API Server
// ===============================

package main

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"videohub/internal/auth"
	"videohub/internal/config"
	"videohub/internal/database"
	"videohub/internal/handlers"
	"videohub/internal/middleware"
	"videohub/internal/services"
	"videohub/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Environment)

	// Initialize database connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize media storage
	mediaClient, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	// Token manager
	tokenManager := auth.NewTokenManager(
		cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	// Initialize services
	userService := services.NewUserService(db, tokenManager)
	videoService := services.NewVideoService(db, mediaClient)
	commentService := services.NewCommentService(db)
	tweetService := services.NewTweetService(db)
	playlistService := services.NewPlaylistService(db)
	reactionService := services.NewReactionService(db)
	subscriptionService := services.NewSubscriptionService(db)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, mediaClient, tokenManager, cfg.SecureCookies)
	videoHandler := handlers.NewVideoHandler(videoService, mediaClient)
	commentHandler := handlers.NewCommentHandler(commentService)
	tweetHandler := handlers.NewTweetHandler(tweetService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize rate limiter
	rateLimiter := NewRateLimiter()

	// Setup router
	router := setupRouter(cfg, rateLimiter)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "healthy",
			"app":      "videohub-api",
			"database": database.HealthCheck(),
		})
	})

	setupRoutes(router, tokenManager,
		userHandler, videoHandler, commentHandler, tweetHandler,
		playlistHandler, reactionHandler, subscriptionHandler, dashboardHandler)

	log.Printf("🚀 VideoHub API listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRouter(cfg *config.Config, rateLimiter *RateLimiter) *gin.Engine {
	router := gin.Default()

	// GZIP compression, skipping media payloads
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{
		".mp4", ".m4v", ".mov", ".webm", ".jpg", ".jpeg", ".png", ".webp"})))

	router.Use(createRateLimitMiddleware(rateLimiter))

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			"Range", "Accept-Ranges",
			"Cache-Control", "If-None-Match", "If-Modified-Since",
		},
		ExposeHeaders: []string{
			"Content-Length", "Content-Range", "Accept-Ranges",
			"Cache-Control", "Last-Modified", "ETag",
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	})

	return router
}

func setupRoutes(
	router *gin.Engine,
	tokenManager *auth.TokenManager,
	userHandler *handlers.UserHandler,
	videoHandler *handlers.VideoHandler,
	commentHandler *handlers.CommentHandler,
	tweetHandler *handlers.TweetHandler,
	playlistHandler *handlers.PlaylistHandler,
	reactionHandler *handlers.ReactionHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	v1 := router.Group("/api/v1")

	// Public routes; OptionalAuth annotates responses with viewer state
	// when credentials are present
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(tokenManager))
	{
		public.POST("/users/register", userHandler.Register)
		public.POST("/users/login", userHandler.Login)
		public.POST("/users/refresh-token", userHandler.RefreshToken)

		public.GET("/videos", videoHandler.List)
		public.GET("/videos/:videoId", videoHandler.GetVideo)
		public.POST("/videos/:videoId/views", videoHandler.RecordView)
		public.GET("/videos/:videoId/recommendations", videoHandler.Recommendations)
		public.GET("/videos/:videoId/comments", commentHandler.ListByVideo)

		public.GET("/channels/:username", userHandler.ChannelProfile)

		public.GET("/users/:userId/tweets", tweetHandler.ListByUser)
		public.GET("/users/:userId/playlists", playlistHandler.ListByUser)
		public.GET("/users/:userId/subscriptions", subscriptionHandler.SubscribedChannels)

		public.GET("/playlists/:playlistId", playlistHandler.Detail)
		public.GET("/playlists/:playlistId/videos", playlistHandler.Videos)

		public.GET("/reactions/:targetKind/:targetId/counts", reactionHandler.Counts)

		public.GET("/subscriptions/:channelId/subscribers", subscriptionHandler.Subscribers)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(tokenManager))
	{
		protected.POST("/users/logout", userHandler.Logout)
		protected.POST("/users/change-password", userHandler.ChangePassword)
		protected.GET("/users/me", userHandler.CurrentUser)
		protected.PATCH("/users/me", userHandler.UpdateAccount)
		protected.PATCH("/users/me/avatar", userHandler.UpdateAvatar)
		protected.PATCH("/users/me/cover-image", userHandler.UpdateCoverImage)
		protected.GET("/users/me/history", userHandler.WatchHistory)

		protected.POST("/videos", videoHandler.Publish)
		protected.PATCH("/videos/:videoId", videoHandler.UpdateInfo)
		protected.DELETE("/videos/:videoId", videoHandler.Delete)
		protected.PATCH("/videos/:videoId/publish-status", videoHandler.TogglePublish)

		protected.POST("/videos/:videoId/comments", commentHandler.Add)
		protected.PATCH("/comments/:commentId", commentHandler.Update)
		protected.DELETE("/comments/:commentId", commentHandler.Delete)

		protected.POST("/tweets", tweetHandler.Create)
		protected.PATCH("/tweets/:tweetId", tweetHandler.Update)
		protected.DELETE("/tweets/:tweetId", tweetHandler.Delete)

		protected.POST("/playlists", playlistHandler.Create)
		protected.GET("/playlists", playlistHandler.ListMine)
		protected.PATCH("/playlists/:playlistId", playlistHandler.Update)
		protected.DELETE("/playlists/:playlistId", playlistHandler.Delete)
		protected.POST("/playlists/:playlistId/videos/:videoId", playlistHandler.AddVideo)
		protected.DELETE("/playlists/:playlistId/videos/:videoId", playlistHandler.RemoveVideo)

		protected.POST("/reactions/:targetKind/:targetId/toggle", reactionHandler.Toggle)
		protected.GET("/reactions/:targetKind/:targetId/status", reactionHandler.Status)

		protected.POST("/subscriptions/:channelId/toggle", subscriptionHandler.Toggle)
		protected.GET("/subscriptions/:channelId/status", subscriptionHandler.IsSubscribed)

		protected.GET("/dashboard/stats", dashboardHandler.Stats)
		protected.GET("/dashboard/videos", dashboardHandler.Videos)
		protected.GET("/dashboard/channel", dashboardHandler.ChannelData)
	}
}

// In-memory per-IP rate limiter
type RateLimiter struct {
	visitors map[string]*Visitor
	mutex    sync.RWMutex
}

type Visitor struct {
	requests int
	lastSeen time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
	}
	go rl.cleanupRoutine()
	return rl
}

func (rl *RateLimiter) Allow(ip string, limit int, window time.Duration) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	visitor, exists := rl.visitors[ip]
	now := time.Now()

	if !exists || now.Sub(visitor.lastSeen) > window {
		rl.visitors[ip] = &Visitor{
			requests: 1,
			lastSeen: now,
		}
		return true
	}

	if visitor.requests >= limit {
		return false
	}

	visitor.requests++
	visitor.lastSeen = now
	return true
}

func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, visitor := range rl.visitors {
		if visitor.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func createRateLimitMiddleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		path := c.Request.URL.Path

		var limit int
		window := time.Minute

		switch {
		case strings.Contains(path, "/users/login") || strings.Contains(path, "/users/register"):
			limit = 20
		case c.Request.Method == "POST" && path == "/api/v1/videos":
			limit = 10 // uploads are expensive
		case strings.Contains(path, "/videos"):
			limit = 100
		default:
			limit = 200
		}

		if !rateLimiter.Allow(ip, limit, window) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "60")

			c.JSON(429, gin.H{
				"statusCode": 429,
				"message":    "Too many requests, please try again later",
				"success":    false,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Next()
	}
}
