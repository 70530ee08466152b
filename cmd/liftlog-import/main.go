package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fabianluz/liftlog/internal/config"
	"github.com/fabianluz/liftlog/internal/ingest/hevy"
	"github.com/fabianluz/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "path to workout CSV export (required)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -file /path/to/export.csv [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Error("cannot open CSV file", "path", *filePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if *dryRun {
		rows, err := hevy.Parse(f)
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		workouts := map[string]bool{}
		exercises := map[string]bool{}
		for _, row := range rows {
			workouts[row.StartTime.String()] = true
			exercises[row.ExerciseTitle] = true
		}
		log.Info("DRY RUN — no data written",
			"sets", len(rows),
			"distinct_workouts", len(workouts),
			"distinct_exercises", len(exercises),
		)
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Run import
	provider := hevy.NewProvider(db, log)
	result, err := provider.Ingest(ctx, f)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import complete",
		"sets", result.SetsProcessed,
		"workouts_created", result.WorkoutsCreated,
		"exercises_created", result.ExercisesCreated,
	)
}
