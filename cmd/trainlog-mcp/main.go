package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/trainlog/internal/config"
	trainlogmcp "github.com/claude/trainlog/internal/mcp"
	"github.com/claude/trainlog/internal/parse"
	"github.com/claude/trainlog/internal/standardize"
	"github.com/claude/trainlog/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local database mode)")
	serverURL := flag.String("server", "", "TrainLog server URL (remote REST mode)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("trainlog-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath == "" && *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: trainlog-mcp -config config.yaml | -server https://trainlog.tailnet.ts.net\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds trainlogmcp.DataSource
	if *serverURL != "" {
		ds = trainlogmcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
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
		log.Info("local mode", "database", cfg.Database.Name)
	}

	parser := parse.New(standardize.Default())

	s := trainlogmcp.New(ds, parser, Version, log)
	log.Info("mcp server starting", "transport", "stdio")
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
