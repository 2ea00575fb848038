// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"

	"github.com/ManuGH/readerpulse/internal/access"
	"github.com/ManuGH/readerpulse/internal/validate"
)

// Validate checks a resolved AppConfig.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ListenAddr("Server.ListenAddr", cfg.Server.ListenAddr)
	if cfg.Server.MetricsAddr != "" {
		v.ListenAddr("Server.MetricsAddr", cfg.Server.MetricsAddr)
	}
	validate.Positive(v, "Server.ShutdownTimeout", cfg.Server.ShutdownTimeout)

	v.LogLevel("Log.Level", cfg.Log.Level)

	v.NotEmpty("Access.EntitlementHeader", cfg.Access.EntitlementHeader)

	v.OneOf("Content.Backend", cfg.Content.Backend, BackendSQLite, BackendBadger)
	switch cfg.Content.Backend {
	case BackendSQLite:
		v.NotEmpty("Content.SQLitePath", cfg.Content.SQLitePath)
		v.Path("Content.SQLitePath", cfg.Content.SQLitePath)
	case BackendBadger:
		v.NotEmpty("Content.BadgerDir", cfg.Content.BadgerDir)
		v.Path("Content.BadgerDir", cfg.Content.BadgerDir)
	}
	v.Path("Content.SeedFile", cfg.Content.SeedFile)
	v.Check(!cfg.Content.WatchSeed || cfg.Content.SeedFile != "", "Content.WatchSeed", cfg.Content.WatchSeed, "requires Content.SeedFile")
	v.OneOf("Content.Cache", cfg.Content.Cache, CacheMemory, CacheRedis, CacheNone)
	if cfg.Content.Cache != CacheNone {
		validate.Positive(v, "Content.CacheTTL", cfg.Content.CacheTTL)
	}

	needsRedis := cfg.Content.Cache == CacheRedis || cfg.Ingest.Sink == SinkRedis
	if needsRedis {
		v.NotEmpty("Redis.Addr", cfg.Redis.Addr)
	}
	validate.Range(v, "Redis.DB", cfg.Redis.DB, 0, 15)

	v.OneOf("Ingest.Sink", cfg.Ingest.Sink, SinkLog, SinkRedis, SinkForward)
	validate.Positive(v, "Ingest.MaxBodyBytes", cfg.Ingest.MaxBodyBytes)
	validate.Positive(v, "Ingest.RateLimit", cfg.Ingest.RateLimit)
	validate.Positive(v, "Ingest.RateWindow", cfg.Ingest.RateWindow)
	if cfg.Ingest.Sink == SinkRedis {
		v.NotEmpty("Ingest.Stream", cfg.Ingest.Stream)
	}

	if cfg.Ingest.Sink == SinkForward {
		v.Endpoint("Delivery.Endpoint", cfg.Delivery.Endpoint)
	}
	validate.Positive(v, "Delivery.QueueSize", cfg.Delivery.QueueSize)
	v.Check(cfg.Delivery.Rate >= 0, "Delivery.Rate", cfg.Delivery.Rate, "must not be negative")

	if cfg.Telemetry.Enabled {
		v.OneOf("Telemetry.Exporter", cfg.Telemetry.Exporter, "grpc", "http")
		v.NotEmpty("Telemetry.Endpoint", cfg.Telemetry.Endpoint)
		validate.Range(v, "Telemetry.SamplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	if err := v.Err(); err != nil {
		return err
	}
	if _, err := cfg.Policy(); err != nil {
		return err
	}
	return nil
}

// Policy builds the access policy described by cfg.Access.
func (cfg AppConfig) Policy() (*access.Policy, error) {
	p, err := access.FromStrings(cfg.Access.Matrix, cfg.Access.PreviewLimits)
	if err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}
	return p, nil
}
