package upload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int
	SetsProcessed int
}

// Uploader scans a directory of CSV exports and sends files the server has
// not seen yet.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    filepath.Clean(dir),
		dryRun: dryRun,
		log:    log,
	}
}

// Run processes all .csv files in the export directory, oldest name first.
// Files already recorded in the state database with an unchanged hash are
// skipped; everything else is sent and recorded on success.
func (u *Uploader) Run() (*Stats, error) {
	entries, err := os.ReadDir(u.dir)
	if err != nil {
		return &u.stats, fmt.Errorf("reading export directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	u.stats.FilesTotal = len(names)
	for _, name := range names {
		if err := u.processFile(name); err != nil {
			u.stats.FilesErrored++
			u.log.Error("upload failed", "file", name, "error", err)
		}
	}

	return &u.stats, nil
}

func (u *Uploader) processFile(name string) error {
	path := filepath.Join(u.dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	sent, err := u.state.IsUploaded(name, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state: %w", err)
	}
	if sent {
		u.stats.FilesSkipped++
		u.log.Debug("already uploaded", "file", name)
		return nil
	}

	if u.dryRun {
		u.stats.FilesUploaded++
		u.log.Info("would upload", "file", name, "size", info.Size())
		return nil
	}

	result, err := u.client.SendCSV(path)
	if err != nil {
		return err
	}

	if err := u.state.MarkUploaded(name, info.Size(), hash, result.SetsProcessed); err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}

	u.stats.FilesUploaded++
	u.stats.SetsProcessed += result.SetsProcessed
	u.log.Info("uploaded", "file", name, "sets", result.SetsProcessed)
	return nil
}
