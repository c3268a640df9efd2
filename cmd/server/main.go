package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearcrm/crm-api/internal/api"
	"github.com/clearcrm/crm-api/internal/infrastructure/config"
	"github.com/clearcrm/crm-api/internal/infrastructure/db/postgres"
	redisdb "github.com/clearcrm/crm-api/internal/infrastructure/db/redis"
	"github.com/clearcrm/crm-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("crm api listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := postgres.Close(db); err != nil {
		log.Error().Err(err).Msg("postgres close error")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}

	log.Info().Msg("server exited cleanly")
}
