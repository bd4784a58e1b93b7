package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/planit/internal/database"
	"github.com/hugh/planit/internal/tasks"
	"github.com/hugh/planit/pkg/config"
	"github.com/hugh/planit/pkg/queue"
	"github.com/hugh/planit/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env, "planit-worker")
	slog.SetDefault(logger)

	logger.Info("starting PlanIt worker")

	purgeCron := cfg.Notifications.PurgeCron
	if err := util.ValidateCronExpr(purgeCron); err != nil {
		logger.Error("invalid NOTIFICATION_PURGE_CRON", "cron", purgeCron, "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	srv := queue.NewServer(&cfg.Redis, 4)
	scheduler := queue.NewScheduler(&cfg.Redis, logger)

	purge, err := tasks.NewNotificationPurgeTask(cfg.Notifications.RetentionDays)
	if err != nil {
		logger.Error("failed to build purge task", "error", err)
		os.Exit(1)
	}
	entryID, err := scheduler.Register(purgeCron, purge, asynq.Queue("low"))
	if err != nil {
		logger.Error("failed to register purge task", "error", err)
		os.Exit(1)
	}
	nextPurge, err := util.NextCronTime(purgeCron, time.Now())
	if err != nil {
		logger.Error("invalid NOTIFICATION_PURGE_CRON", "cron", purgeCron, "error", err)
		os.Exit(1)
	}
	logger.Info("notification purge scheduled",
		"entry_id", entryID,
		"cron", purgeCron,
		"next_run", nextPurge,
		"retention_days", cfg.Notifications.RetentionDays,
	)

	handler := tasks.NewHandler(db, logger)
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	if err := srv.Start(mux); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	logger.Info("worker started, waiting for tasks...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("worker stopped")
}
