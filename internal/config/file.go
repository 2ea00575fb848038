// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// FileConfig is the YAML representation. Pointers distinguish "unset" from zero.
type FileConfig struct {
	Server    ServerFileConfig    `yaml:"server,omitempty"`
	Log       LogFileConfig       `yaml:"log,omitempty"`
	Access    AccessFileConfig    `yaml:"access,omitempty"`
	Content   ContentFileConfig   `yaml:"content,omitempty"`
	Redis     RedisFileConfig     `yaml:"redis,omitempty"`
	Ingest    IngestFileConfig    `yaml:"ingest,omitempty"`
	Delivery  DeliveryFileConfig  `yaml:"delivery,omitempty"`
	Telemetry TelemetryFileConfig `yaml:"telemetry,omitempty"`
}

type ServerFileConfig struct {
	Listen          string   `yaml:"listen,omitempty"`
	MetricsListen   *string  `yaml:"metricsListen,omitempty"`
	ReadTimeout     string   `yaml:"readTimeout,omitempty"`
	WriteTimeout    string   `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string   `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout string   `yaml:"shutdownTimeout,omitempty"`
	CORSOrigins     []string `yaml:"corsOrigins,omitempty"`
}

type LogFileConfig struct {
	Level   string `yaml:"level,omitempty"`
	Service string `yaml:"service,omitempty"`
}

type AccessFileConfig struct {
	PreviewLimits     map[string]int      `yaml:"previewLimits,omitempty"`
	Matrix            map[string][]string `yaml:"matrix,omitempty"`
	EntitlementHeader string              `yaml:"entitlementHeader,omitempty"`
}

type ContentFileConfig struct {
	Backend    string `yaml:"backend,omitempty"`
	SQLitePath string `yaml:"sqlitePath,omitempty"`
	BadgerDir  string `yaml:"badgerDir,omitempty"`
	SeedFile   string `yaml:"seedFile,omitempty"`
	WatchSeed  *bool  `yaml:"watchSeed,omitempty"`
	Cache      string `yaml:"cache,omitempty"`
	CacheTTL   string `yaml:"cacheTTL,omitempty"`
}

type RedisFileConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       *int   `yaml:"db,omitempty"`
}

type IngestFileConfig struct {
	Sink         string `yaml:"sink,omitempty"`
	MaxBodyBytes *int64 `yaml:"maxBodyBytes,omitempty"`
	RateLimit    *int   `yaml:"rateLimit,omitempty"`
	RateWindow   string `yaml:"rateWindow,omitempty"`
	Stream       string `yaml:"stream,omitempty"`
	StreamMaxLen *int64 `yaml:"streamMaxLen,omitempty"`
}

type DeliveryFileConfig struct {
	Endpoint  string   `yaml:"endpoint,omitempty"`
	QueueSize *int     `yaml:"queueSize,omitempty"`
	Rate      *float64 `yaml:"rate,omitempty"`
	Burst     *int     `yaml:"burst,omitempty"`
	Timeout   string   `yaml:"timeout,omitempty"`
}

type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	ServiceName  string   `yaml:"serviceName,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
