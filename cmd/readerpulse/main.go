// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command readerpulse serves tiered content and collects engagement records.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/readerpulse/internal/config"
	"github.com/ManuGH/readerpulse/internal/daemon"
	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "config" {
		os.Exit(runConfigCLI(os.Args[2:]))
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	xglog.Configure(xglog.Config{Level: "info", Service: "readerpulse", Version: version.Version})
	logger := xglog.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := strings.TrimSpace(*configPath)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	xglog.Configure(xglog.Config{Level: cfg.Log.Level, Service: cfg.Log.Service, Version: cfg.Version})
	logger = xglog.WithComponent("main")
	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str("event", "config.loaded").
		Str("source", source).
		Str("path", path).
		Str("content_backend", cfg.Content.Backend).
		Str("ingest_sink", cfg.Ingest.Sink).
		Msg("configuration loaded")
	if unused := loader.UnusedEnvKeys(); len(unused) > 0 {
		logger.Warn().
			Str("event", "config.unknown_env").
			Strs("keys", unused).
			Msg("ignoring unrecognised environment variables")
	}

	rt, err := daemon.Build(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("event", "startup.failed").Msg("failed to build daemon")
	}

	if err := rt.App.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Str("event", "daemon.failed").Msg("daemon stopped with error")
		os.Exit(1)
	}
	logger.Info().Str("event", "daemon.stopped").Msg("daemon stopped")
}
