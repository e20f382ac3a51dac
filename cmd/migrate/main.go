package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	"github.com/hoangtv-dev/bemart-backend/pkg/db"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "applying schema migrations")

	if err := migrate.Run(ctx, dbClient.DB()); err != nil {
		logg.Error(ctx, "migrations failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "schema migrations completed")
}
