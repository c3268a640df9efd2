// Seeds the development database with a small CRM dataset.
package main

import (
	"context"

	"github.com/clearcrm/crm-api/internal/infrastructure/config"
	"github.com/clearcrm/crm-api/internal/infrastructure/db/postgres"
	"github.com/clearcrm/crm-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer func() { _ = postgres.Close(db) }()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}
	if err := postgres.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Msg("seeding complete")
}
