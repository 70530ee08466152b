package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fabianluz/liftlog/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftLog server URL (e.g. https://liftlog.tail1234.ts.net)")
	dirPath := flag.String("path", "", "directory containing workout CSV exports")
	apiKey := flag.String("api-key", "", "API key for upload authentication (optional)")
	dryRun := flag.Bool("dry-run", false, "scan and hash files but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dirPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-upload -server <URL> -path <export dir> [-api-key KEY] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	// Strip trailing slash from server URL
	*serverURL = strings.TrimRight(*serverURL, "/")

	info, err := os.Stat(*dirPath)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", *dirPath)
		os.Exit(1)
	}
	log.Info("using export directory", "path", *dirPath)

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".liftlog-upload")

	state, err := upload.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Create client (nil-safe in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode — files will be scanned and hashed but not sent")
	}

	// Run upload
	uploader := upload.New(client, state, *dirPath, *dryRun, log)
	stats, err := uploader.Run()
	if err != nil {
		log.Error("upload failed", "error", err)
		printStats(stats, state)
		os.Exit(1)
	}

	printStats(stats, state)
	log.Info("upload complete")
}

func printStats(stats *upload.Stats, state *upload.StateDB) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.FilesUploaded)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Sets processed:   %d\n", stats.SetsProcessed)
	if total, err := state.TotalSetsUploaded(); err == nil {
		fmt.Printf("  Sets on record:   %d (all runs)\n", total)
	}
	fmt.Println()
}
