package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/api"
	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/router"
	"github.com/nutrilog/backend/internal/server"
	"github.com/nutrilog/backend/internal/service"
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

	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	var store cache.Cache = cache.Disabled{}
	if client, err := database.NewRedisClient(cfg); err != nil {
		logger.WithError(err).Warn("redis unavailable, caching disabled")
	} else {
		store = cache.NewRedis(client)
	}

	// Services
	summaryService := service.NewSummaryService(db, store)
	foodService := service.NewFoodService(db, store)
	logService := service.NewFoodLogService(db, summaryService)
	waterService := service.NewWaterService(db, summaryService)
	profileService := service.NewProfileService(db)
	goalService := service.NewGoalService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)

	// Handlers
	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Food:    api.NewFoodHandler(foodService, logService, summaryService, waterService),
		Profile: api.NewProfileHandler(profileService),
		Goal:    api.NewGoalHandler(goalService),
	}

	engine := router.Setup(handlers, authService, cfg.AllowedOrigins)

	srv := server.New(engine, logger)
	if err := srv.Start(cfg.ServerPort); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
