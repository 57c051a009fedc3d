package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/auth"
	"github.com/sonit/feedbacksite/internal/config"
	"github.com/sonit/feedbacksite/internal/constants"
	"github.com/sonit/feedbacksite/internal/database"
	"github.com/sonit/feedbacksite/internal/handlers"
	"github.com/sonit/feedbacksite/internal/metrics"
	"github.com/sonit/feedbacksite/internal/middleware"
	"github.com/sonit/feedbacksite/internal/repository"
	"github.com/sonit/feedbacksite/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.App.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database, !cfg.IsRelease())
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", slog.Any("error", err))
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	// Initialize Gin router
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CorrelationID(),
		middleware.RequestLogger(logger),
		httpMetrics.Middleware(),
		sessions.Sessions(constants.SessionCookieName, store),
	)

	// Initialize priority advisor
	var advisor *services.PriorityAdvisor
	if cfg.OpenAI.APIKey != "" {
		advisor = services.NewPriorityAdvisor(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		logger.Info("OPENAI_API_KEY not set, priority suggestions disabled")
	}

	repo := repository.NewStore(db)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	authService := services.NewAuthService(repo)
	tabService := services.NewTabService(repo)
	subTabService := services.NewSubTabService(repo)
	feedbackService := services.NewFeedbackService(repo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Feedback API is running",
		})
	})
	r.GET("/metrics", httpMetrics.Handler())

	// API routes
	handlers.RegisterRoutes(r.Group("/api"), handlers.Handlers{
		Auth:     handlers.NewAuthHandler(authService, tokens),
		Tab:      handlers.NewTabHandler(tabService, subTabService, feedbackService),
		SubTab:   handlers.NewSubTabHandler(subTabService, feedbackService),
		Feedback: handlers.NewFeedbackHandler(feedbackService, advisor),
	}, tokens)

	// Start server
	logger.Info("server starting", slog.String("addr", cfg.App.Address()))
	if err := r.Run(cfg.App.Address()); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsRelease() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.Redis.Host != "" {
		redis, err := redisStore.NewStore(
			10,                             // Redis pool size
			"tcp",                          // network type
			cfg.Redis.Address(),            // Redis address from config
			"",                             // username (empty for default user)
			cfg.Redis.Password,             // password (empty = no password)
			[]byte(cfg.Auth.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = redis
	} else {
		store = cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsRelease(), // true in production (HTTPS)
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
