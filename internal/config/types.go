// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Content backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Ingest sinks.
const (
	SinkLog     = "log"
	SinkRedis   = "redis"
	SinkForward = "forward"
)

// AppConfig is the effective, validated configuration.
type AppConfig struct {
	Version   string
	Server    ServerConfig
	Log       LogConfig
	Access    AccessConfig
	Content   ContentConfig
	Redis     RedisConfig
	Ingest    IngestConfig
	Delivery  DeliveryConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	ListenAddr      string
	MetricsAddr     string // empty disables the metrics listener
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type LogConfig struct {
	Level   string
	Service string
}

// AccessConfig overrides the built-in entitlement policy. Empty maps keep the defaults.
type AccessConfig struct {
	PreviewLimits     map[string]int
	Matrix            map[string][]string
	EntitlementHeader string
}

type ContentConfig struct {
	Backend    string
	SQLitePath string
	BadgerDir  string
	SeedFile   string
	WatchSeed  bool
	Cache      string
	CacheTTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type IngestConfig struct {
	Sink         string
	MaxBodyBytes int64
	RateLimit    int
	RateWindow   time.Duration
	Stream       string
	StreamMaxLen int64
}

// DeliveryConfig configures outbound forwarding of accepted records.
type DeliveryConfig struct {
	Endpoint  string
	QueueSize int
	Rate      float64
	Burst     int
	Timeout   time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Exporter     string // grpc | http
	Endpoint     string
	SamplingRate float64
}
