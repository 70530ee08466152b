package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fabianluz/liftlog/internal/config"
	"github.com/fabianluz/liftlog/internal/mcp"
	"github.com/fabianluz/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftLog server URL for remote mode (e.g. https://liftlog.tail1234.ts.net)")
	configPath := flag.String("config", "", "path to config file for direct database mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-mcp", Version)
		return
	}

	// Log to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" && *configPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -server <URL> | -config config.yaml\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds mcp.DataSource

	if *serverURL != "" {
		ds = mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
		log.Info("using remote server", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("using direct database connection")
	}

	s := mcp.New(ds, Version, log)
	log.Info("MCP server starting on stdio", "version", Version)

	if err := server.ServeStdio(s); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
