package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/database"
)

func main() {
	logger := logrus.New()

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
		logger.WithError(err).Fatal("migration failed")
	}

	logger.Info("migrations applied")
}
