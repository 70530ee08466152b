package hevy

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fabianluz/liftlog/internal/importer"
	"github.com/fabianluz/liftlog/internal/ingest"
	"github.com/fabianluz/liftlog/internal/storage"
)

// Compile-time check: the storage import transaction satisfies the
// reconciler's Store contract.
var _ importer.Store = (*storage.ImportTx)(nil)

// Provider processes workout CSV exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new CSV ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a CSV export and imports it inside a single transaction.
// A parse error, store error, or cancelled context rolls back everything
// from the file; nothing partial ever persists.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	rows, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	tx, err := p.db.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback(ctx)

	stats, err := importer.Run(ctx, tx, rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	p.log.Info("csv import committed",
		"sets", stats.SetsProcessed,
		"workouts_created", stats.WorkoutsCreated,
		"exercises_created", stats.ExercisesCreated,
	)

	return &ingest.Result{
		SetsProcessed:    stats.SetsProcessed,
		WorkoutsCreated:  stats.WorkoutsCreated,
		ExercisesCreated: stats.ExercisesCreated,
		Message:          ingest.SuccessMessage(stats.SetsProcessed),
	}, nil
}
