package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/trainlog/internal/config"
	"github.com/claude/trainlog/internal/importer"
	"github.com/claude/trainlog/internal/parse"
	"github.com/claude/trainlog/internal/standardize"
	"github.com/claude/trainlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logsPath := flag.String("path", "", "path to directory of .txt training logs (required)")
	stateDir := flag.String("state-dir", "", "state db directory (default ~/.trainlog-import)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without inserting into database")
	userID := flag.Int("user", 1, "user ID to import as")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *logsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: trainlog-import -config config.yaml -path /path/to/logs [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*logsPath)
	if err != nil || !info.IsDir() {
		log.Error("logs path does not exist or is not a directory", "path", *logsPath)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database (not needed for a dry run)
	var db *storage.DB
	if !*dryRun {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		dsn := cfg.Database.DSN()

		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		db, err = storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
	}

	// Open state database
	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".trainlog-import")
	}
	state, err := importer.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	parser := parse.New(standardize.Default())

	// Run import
	imp := importer.New(db, state, parser, log, *dryRun)
	stats, err := imp.Import(ctx, *logsPath, *userID)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats importer.Stats) {
	log.Info("import stats",
		"files_seen", stats.FilesSeen,
		"files_imported", stats.FilesImported,
		"files_skipped", stats.FilesSkipped,
		"files_failed", stats.FilesFailed,
		"sessions", stats.Sessions,
		"line_errors", stats.LineErrors,
	)
}
