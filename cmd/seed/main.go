package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-directory/internal/config"
	"github.com/jwalitptl/clinic-directory/internal/fixtures"
	"github.com/jwalitptl/clinic-directory/internal/repository/sqlstore"
	seedService "github.com/jwalitptl/clinic-directory/internal/service/seed"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
)

// seed creates and populates the tables, then exits. Tables that already
// exist are left untouched, so a second run changes nothing.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		JSON:       cfg.Logging.Format == "json",
	})
	logger.SetGlobal(appLogger)

	db, err := sqlstore.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Database.Backend).Msg("failed to open database")
	}
	defer db.Close()

	set, err := fixtures.Load(cfg.Fixtures.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixtures")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := seedService.NewService(sqlstore.NewSchemaRepository(db, nil), appLogger, nil).Run(ctx, set)
	if err != nil {
		log.Error().Err(err).Msg("seeding failed")
		db.Close()
		os.Exit(1)
	}

	for _, t := range result.Tables {
		log.Info().
			Str("table", t.Table).
			Bool("created", t.Created).
			Int("inserted", t.Inserted).
			Int("failed", t.Failed).
			Msg("seed result")
	}
}
