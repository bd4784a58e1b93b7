package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hugh/planit/internal/api"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/database"
	"github.com/hugh/planit/pkg/config"
	"github.com/hugh/planit/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env, "planit-api")
	slog.SetDefault(logger)

	logger.Info("starting PlanIt server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Server.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("database schema migrated")
	}

	// Redis is optional: without it the rate limiter keeps counters in memory.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "error", err)
		_ = redisClient.Close()
		redisClient = nil
	}
	cancelPing()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry(), cfg.JWT.RememberMeExpiry())

	var google auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google = auth.NewIDTokenVerifier(cfg.Google.ClientID)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, Google ids are accepted without token verification")
	}
	authService := auth.NewService(db, jwtService, google)

	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		JWTService:     jwtService,
		AuthService:    authService,
		AllowedOrigins: cfg.Server.AllowedOrigins(),
		RateLimitReqs:  cfg.RateLimit.Requests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}
