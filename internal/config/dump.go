// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ToFile maps the effective configuration back to its YAML form.
// Secrets are not written.
func ToFile(cfg AppConfig) FileConfig {
	metrics := cfg.Server.MetricsAddr
	watch := cfg.Content.WatchSeed
	db := cfg.Redis.DB
	maxBody := cfg.Ingest.MaxBodyBytes
	rateLimit := cfg.Ingest.RateLimit
	maxLen := cfg.Ingest.StreamMaxLen
	queue := cfg.Delivery.QueueSize
	rate := cfg.Delivery.Rate
	burst := cfg.Delivery.Burst
	tracing := cfg.Telemetry.Enabled
	sample := cfg.Telemetry.SamplingRate

	return FileConfig{
		Server: ServerFileConfig{
			Listen:          cfg.Server.ListenAddr,
			MetricsListen:   &metrics,
			ReadTimeout:     cfg.Server.ReadTimeout.String(),
			WriteTimeout:    cfg.Server.WriteTimeout.String(),
			IdleTimeout:     cfg.Server.IdleTimeout.String(),
			ShutdownTimeout: cfg.Server.ShutdownTimeout.String(),
			CORSOrigins:     cfg.Server.CORSOrigins,
		},
		Log: LogFileConfig{Level: cfg.Log.Level, Service: cfg.Log.Service},
		Access: AccessFileConfig{
			PreviewLimits:     cfg.Access.PreviewLimits,
			Matrix:            cfg.Access.Matrix,
			EntitlementHeader: cfg.Access.EntitlementHeader,
		},
		Content: ContentFileConfig{
			Backend:    cfg.Content.Backend,
			SQLitePath: cfg.Content.SQLitePath,
			BadgerDir:  cfg.Content.BadgerDir,
			SeedFile:   cfg.Content.SeedFile,
			WatchSeed:  &watch,
			Cache:      cfg.Content.Cache,
			CacheTTL:   cfg.Content.CacheTTL.String(),
		},
		Redis: RedisFileConfig{Addr: cfg.Redis.Addr, DB: &db},
		Ingest: IngestFileConfig{
			Sink:         cfg.Ingest.Sink,
			MaxBodyBytes: &maxBody,
			RateLimit:    &rateLimit,
			RateWindow:   cfg.Ingest.RateWindow.String(),
			Stream:       cfg.Ingest.Stream,
			StreamMaxLen: &maxLen,
		},
		Delivery: DeliveryFileConfig{
			Endpoint:  cfg.Delivery.Endpoint,
			QueueSize: &queue,
			Rate:      &rate,
			Burst:     &burst,
			Timeout:   cfg.Delivery.Timeout.String(),
		},
		Telemetry: TelemetryFileConfig{
			Enabled:      &tracing,
			ServiceName:  cfg.Telemetry.ServiceName,
			Exporter:     cfg.Telemetry.Exporter,
			Endpoint:     cfg.Telemetry.Endpoint,
			SamplingRate: &sample,
		},
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToFile(cfg)); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Dump writes cfg to path atomically.
func Dump(cfg AppConfig, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
