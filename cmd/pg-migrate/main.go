package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cityvizor/pg-migrate/internal/infra/mongosrc"
	"github.com/cityvizor/pg-migrate/internal/infra/pgstore"
	"github.com/cityvizor/pg-migrate/internal/logger"
	"github.com/cityvizor/pg-migrate/internal/migration"
)

type config struct {
	mongoURI string
	mongoDB  string
	pgDSN    string
	dataPath string
	dryRun   bool
	timeout  time.Duration
}

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	var cfg config
	flag.StringVar(&cfg.mongoURI, "mongo-uri", "mongodb://127.0.0.1:27017", "Source document store URI")
	flag.StringVar(&cfg.mongoDB, "mongo-db", "cityvizor", "Source database name")
	flag.StringVar(&cfg.pgDSN, "pg-dsn", "", "Destination PostgreSQL DSN (required)")
	flag.StringVar(&cfg.dataPath, "data-path", "cityvizor-data", "Data directory for exported avatar images")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Dry run mode - iterate everything without writing")
	flag.DurationVar(&cfg.timeout, "timeout", 30*time.Minute, "Overall run timeout")
	flag.Parse()

	if cfg.pgDSN == "" {
		log.Fatal().Msg("Error: --pg-dsn is required")
	}

	// The DRY environment variable enables dry-run mode as well, for parity
	// with operator tooling that cannot pass flags.
	if v := os.Getenv("DRY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.dryRun = true
		}
	}

	// Stamp every log line with a run id
	log = log.With().Str("run_id", uuid.NewString()).Logger()

	if err := run(log, cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

// run executes one migration. Both store connections are closed on the way
// out, success or failure.
func run(log zerolog.Logger, cfg config) error {
	// Create context with timeout so the run doesn't hang on a stuck store
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("mongo_db", cfg.mongoDB).
		Bool("dry_run", cfg.dryRun).
		Msg("Starting migration")

	// Connect to the source document store
	source, err := mongosrc.Connect(ctx, cfg.mongoURI, cfg.mongoDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := source.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect from source store")
		}
	}()

	// Connect to the destination database
	target, err := pgstore.Connect(ctx, cfg.pgDSN)
	if err != nil {
		return err
	}
	defer target.Close()

	summary, err := migration.Run(ctx, source, target, migration.Options{
		AvatarDir: filepath.Join(cfg.dataPath, "avatars"),
		DryRun:    cfg.dryRun,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Migration completed: %d profiles, %d years, %d events, %d payments, %d ledger entries (%d writes).\n",
		summary.Profiles, summary.Years, summary.Events, summary.Payments, summary.Entries, summary.Writes)
	return nil
}
