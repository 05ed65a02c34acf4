package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/jobs"
	"github.com/nutrilog/backend/internal/service"
)

const (
	summaryInterval = time.Hour
	goalInterval    = 6 * time.Hour
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	var store cache.Cache = cache.Disabled{}
	if client, err := database.NewRedisClient(cfg); err != nil {
		logger.WithError(err).Warn("redis unavailable, caching disabled")
	} else {
		store = cache.NewRedis(client)
	}

	summaries := service.NewSummaryService(db, store)
	goals := service.NewGoalService(db)

	summaryJob := jobs.NewSummaryJob(db, summaries)
	goalJob := jobs.NewGoalJob(goals)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		logger.WithField("signal", sig.String()).Info("scheduler_stopping")
		cancel()
	}()

	summaryTicker := time.NewTicker(summaryInterval)
	defer summaryTicker.Stop()
	goalTicker := time.NewTicker(goalInterval)
	defer goalTicker.Stop()

	logger.Info("scheduler_started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-summaryTicker.C:
			err := jobs.RunWithRetry(ctx, "recalculate_summaries", 3, time.Minute, func(ctx context.Context) error {
				_, err := summaryJob.RecalculateYesterday(ctx)
				return err
			})
			if err != nil {
				logger.WithError(err).Error("summary job failed")
			}
		case <-goalTicker.C:
			err := jobs.RunWithRetry(ctx, "check_goal_progress", 3, time.Minute, goalJob.Run)
			if err != nil {
				logger.WithError(err).Error("goal job failed")
			}
		}
	}
}
