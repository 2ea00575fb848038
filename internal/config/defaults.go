// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// DefaultEntitlementHeader is set by the upstream auth proxy.
const DefaultEntitlementHeader = "X-Reader-Entitlement"

// Defaults returns the baseline configuration before file and env overrides.
func Defaults() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MetricsAddr:     ":9090",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:   "info",
			Service: "readerpulse",
		},
		Access: AccessConfig{
			EntitlementHeader: DefaultEntitlementHeader,
		},
		Content: ContentConfig{
			Backend:    BackendSQLite,
			SQLitePath: "data/content.db",
			BadgerDir:  "data/content.badger",
			Cache:      CacheMemory,
			CacheTTL:   5 * time.Minute,
		},
		Ingest: IngestConfig{
			Sink:         SinkLog,
			MaxBodyBytes: 64 << 10,
			RateLimit:    120,
			RateWindow:   time.Minute,
			Stream:       "readerpulse:events",
			StreamMaxLen: 100_000,
		},
		Delivery: DeliveryConfig{
			QueueSize: 256,
			Rate:      50,
			Burst:     100,
			Timeout:   5 * time.Second,
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "readerpulse",
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}
