package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ruya-backend/internal/common/cache"
	"ruya-backend/internal/common/config"
	"ruya-backend/internal/common/logger"
	"ruya-backend/internal/common/middleware"
	dreamhttp "ruya-backend/internal/features/dream/delivery/http"
	dreamrepo "ruya-backend/internal/features/dream/repository/postgres"
	dreamservice "ruya-backend/internal/features/dream/service"
	profilehttp "ruya-backend/internal/features/profile/delivery/http"
	profilerepo "ruya-backend/internal/features/profile/repository/postgres"
	profileservice "ruya-backend/internal/features/profile/service"
	"ruya-backend/internal/platform/gemini"
	"ruya-backend/internal/platform/postgres"
	redisplatform "ruya-backend/internal/platform/redis"
)

// textGenerator adapts the Gemini client to the dream service port.
type textGenerator struct {
	client *gemini.Client
}

func (g *textGenerator) StartChat() dreamservice.Chat {
	return g.client.StartChat()
}

func main() {
	cfg := config.Load()

	logger.Init("ruya-backend", cfg.Debug)

	ctx := context.Background()

	// The server boots even without a database, mirroring a deploy where
	// the store comes up late: /health stays reachable and every data
	// endpoint answers 503 until the next restart.
	postgresClient, err := postgres.NewClient(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("Database unavailable, starting without store")
		postgresClient = nil
	}
	if postgresClient != nil {
		defer postgresClient.Close()
	}

	var cacheService *cache.CacheService
	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient, err := redisplatform.Open(ctx, redisAddr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, profile cache disabled")
	} else {
		defer redisClient.Close()
		cacheService = cache.NewCacheService(redisClient)
		logger.Info().Msg("Cache service initialized")
	}

	if cfg.Gemini.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, dream analysis will fail until configured")
	}
	geminiClient := gemini.NewClient(
		&http.Client{},
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Model,
		cfg.Gemini.Timeout,
	)

	var profileSvc profileservice.ProfileService
	var dreamSvc dreamservice.DreamService
	if postgresClient != nil {
		profileRepository := profilerepo.NewPostgresRepository(postgresClient.GetDB())
		dreamRepository := dreamrepo.NewPostgresRepository(postgresClient.GetDB())

		profileSvc = profileservice.NewProfileService(profileRepository, cacheService, cfg.Redis.ProfileTTL)
		dreamSvc = dreamservice.NewDreamService(dreamRepository, profileSvc, &textGenerator{client: geminiClient}, dreamservice.ImageConfig{
			BaseURL: cfg.Image.BaseURL,
			Width:   cfg.Image.Width,
			Height:  cfg.Image.Height,
		})

		logger.Info().Msg("Services initialized")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorResponder())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		database := "disconnected"
		if postgresClient != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := postgresClient.HealthCheck(pingCtx); err == nil {
				database = "connected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": database,
		})
	})

	data := router.Group("/")
	data.Use(middleware.RequireDatabase(func() bool { return postgresClient != nil }))
	if postgresClient != nil {
		profilehttp.NewProfileHandler(profileSvc).RegisterRoutes(data)
		dreamhttp.NewDreamHandler(dreamSvc).RegisterRoutes(data)
	}

	logger.Info().Msg("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// The analysis pipeline makes three sequential model calls, each
		// bounded by Gemini.Timeout; the write timeout must outlast them.
		WriteTimeout: 3*cfg.Gemini.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
