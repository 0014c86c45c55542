package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/logcentral/logcentral/internal/config"
	"github.com/logcentral/logcentral/internal/database"
	"github.com/logcentral/logcentral/internal/server"
	"github.com/logcentral/logcentral/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadApp()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.Primary.Env == "production" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	if cfg.Database.URL != "" {
		if err := database.RunMigrations(ctx, cfg.Database.URL); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
		pool, err := database.NewPool(ctx, cfg.Database.URL, cfg.Observability, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("database pool failed")
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
	} else {
		logger.Warn().Msg("no database url configured, using in-memory store")
		st = store.NewMemoryStore()
	}

	srv := server.New(cfg, st, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Info().Err(err).Msg("server exited")
	}
}
