// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

const envPrefix = "READERPULSE_"

// Environment keys. LOG_LEVEL is shared with the log package.
const (
	EnvListen           = "READERPULSE_LISTEN"
	EnvMetricsListen    = "READERPULSE_METRICS_LISTEN"
	EnvCORSOrigins      = "READERPULSE_CORS_ORIGINS"
	EnvLogLevel         = "LOG_LEVEL"
	EnvEntitlementHdr   = "READERPULSE_ENTITLEMENT_HEADER"
	EnvContentBackend   = "READERPULSE_CONTENT_BACKEND"
	EnvSQLitePath       = "READERPULSE_SQLITE_PATH"
	EnvBadgerDir        = "READERPULSE_BADGER_DIR"
	EnvSeedFile         = "READERPULSE_SEED_FILE"
	EnvWatchSeed        = "READERPULSE_WATCH_SEED"
	EnvCache            = "READERPULSE_CACHE"
	EnvCacheTTL         = "READERPULSE_CACHE_TTL"
	EnvRedisAddr        = "READERPULSE_REDIS_ADDR"
	EnvRedisPassword    = "READERPULSE_REDIS_PASSWORD"
	EnvRedisDB          = "READERPULSE_REDIS_DB"
	EnvIngestSink       = "READERPULSE_INGEST_SINK"
	EnvIngestMaxBody    = "READERPULSE_INGEST_MAX_BODY_BYTES"
	EnvIngestRateLimit  = "READERPULSE_INGEST_RATE_LIMIT"
	EnvDeliveryEndpoint = "READERPULSE_DELIVERY_ENDPOINT"
	EnvTracingEnabled   = "READERPULSE_TRACING_ENABLED"
	EnvTracingExporter  = "READERPULSE_TRACING_EXPORTER"
	EnvTracingEndpoint  = "READERPULSE_TRACING_ENDPOINT"
	EnvTracingSample    = "READERPULSE_TRACING_SAMPLE_RATE"
)

// fromEnv marks key as consumed and parses it with def as fallback.
func fromEnv[T any](l *Loader, key string, parse func(string, T) T, def T) T {
	l.ConsumedEnvKeys[key] = struct{}{}
	return parse(key, def)
}

// mergeEnvConfig applies environment overrides; values already resolved act as defaults.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Server.ListenAddr = fromEnv(l, EnvListen, ParseString, cfg.Server.ListenAddr)
	cfg.Server.MetricsAddr = fromEnv(l, EnvMetricsListen, ParseString, cfg.Server.MetricsAddr)
	cfg.Server.CORSOrigins = fromEnv(l, EnvCORSOrigins, ParseCSV, cfg.Server.CORSOrigins)
	cfg.Log.Level = fromEnv(l, EnvLogLevel, ParseString, cfg.Log.Level)
	cfg.Access.EntitlementHeader = fromEnv(l, EnvEntitlementHdr, ParseString, cfg.Access.EntitlementHeader)

	cfg.Content.Backend = fromEnv(l, EnvContentBackend, ParseString, cfg.Content.Backend)
	cfg.Content.SQLitePath = fromEnv(l, EnvSQLitePath, ParseString, cfg.Content.SQLitePath)
	cfg.Content.BadgerDir = fromEnv(l, EnvBadgerDir, ParseString, cfg.Content.BadgerDir)
	cfg.Content.SeedFile = fromEnv(l, EnvSeedFile, ParseString, cfg.Content.SeedFile)
	cfg.Content.WatchSeed = fromEnv(l, EnvWatchSeed, ParseBool, cfg.Content.WatchSeed)
	cfg.Content.Cache = fromEnv(l, EnvCache, ParseString, cfg.Content.Cache)
	cfg.Content.CacheTTL = fromEnv(l, EnvCacheTTL, ParseDuration, cfg.Content.CacheTTL)

	cfg.Redis.Addr = fromEnv(l, EnvRedisAddr, ParseString, cfg.Redis.Addr)
	cfg.Redis.Password = fromEnv(l, EnvRedisPassword, ParseString, cfg.Redis.Password)
	cfg.Redis.DB = fromEnv(l, EnvRedisDB, ParseInt, cfg.Redis.DB)

	cfg.Ingest.Sink = fromEnv(l, EnvIngestSink, ParseString, cfg.Ingest.Sink)
	cfg.Ingest.MaxBodyBytes = fromEnv(l, EnvIngestMaxBody, ParseInt64, cfg.Ingest.MaxBodyBytes)
	cfg.Ingest.RateLimit = fromEnv(l, EnvIngestRateLimit, ParseInt, cfg.Ingest.RateLimit)

	cfg.Delivery.Endpoint = fromEnv(l, EnvDeliveryEndpoint, ParseString, cfg.Delivery.Endpoint)

	cfg.Telemetry.Enabled = fromEnv(l, EnvTracingEnabled, ParseBool, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = fromEnv(l, EnvTracingExporter, ParseString, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = fromEnv(l, EnvTracingEndpoint, ParseString, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = fromEnv(l, EnvTracingSample, ParseFloat, cfg.Telemetry.SamplingRate)
}
