package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"checador/internal/app/server"
	"checador/internal/platform/config"
	"checador/internal/platform/db"
	"checador/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "checador",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		log.Info(ctx, "migrations applied")
	}

	app, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error(context.Background(), "shutdown.close_failed", err)
		}
	}()

	if cfg.RunSeed {
		if err := db.Seed(ctx, app.DB, cfg); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	return app.Run(ctx)
}
