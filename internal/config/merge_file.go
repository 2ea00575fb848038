// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"os"
	"time"
)

// mergeFileConfig overlays every set file value onto dst.
func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if err := mergeFileServer(dst, src.Server); err != nil {
		return err
	}
	setString(&dst.Log.Level, src.Log.Level)
	setString(&dst.Log.Service, src.Log.Service)

	if len(src.Access.PreviewLimits) > 0 {
		dst.Access.PreviewLimits = src.Access.PreviewLimits
	}
	if len(src.Access.Matrix) > 0 {
		dst.Access.Matrix = src.Access.Matrix
	}
	setString(&dst.Access.EntitlementHeader, src.Access.EntitlementHeader)

	if err := mergeFileContent(dst, src.Content); err != nil {
		return err
	}

	setString(&dst.Redis.Addr, src.Redis.Addr)
	setString(&dst.Redis.Password, os.ExpandEnv(src.Redis.Password))
	setPtr(&dst.Redis.DB, src.Redis.DB)

	if err := mergeFileIngest(dst, src.Ingest); err != nil {
		return err
	}
	if err := mergeFileDelivery(dst, src.Delivery); err != nil {
		return err
	}

	setPtr(&dst.Telemetry.Enabled, src.Telemetry.Enabled)
	setString(&dst.Telemetry.ServiceName, src.Telemetry.ServiceName)
	setString(&dst.Telemetry.Exporter, src.Telemetry.Exporter)
	setString(&dst.Telemetry.Endpoint, src.Telemetry.Endpoint)
	setPtr(&dst.Telemetry.SamplingRate, src.Telemetry.SamplingRate)
	return nil
}

func mergeFileServer(dst *AppConfig, src ServerFileConfig) error {
	setString(&dst.Server.ListenAddr, src.Listen)
	setPtr(&dst.Server.MetricsAddr, src.MetricsListen)
	if len(src.CORSOrigins) > 0 {
		dst.Server.CORSOrigins = src.CORSOrigins
	}
	for _, d := range []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"server.readTimeout", src.ReadTimeout, &dst.Server.ReadTimeout},
		{"server.writeTimeout", src.WriteTimeout, &dst.Server.WriteTimeout},
		{"server.idleTimeout", src.IdleTimeout, &dst.Server.IdleTimeout},
		{"server.shutdownTimeout", src.ShutdownTimeout, &dst.Server.ShutdownTimeout},
	} {
		if err := setDuration(d.dst, d.field, d.raw); err != nil {
			return err
		}
	}
	return nil
}

func mergeFileContent(dst *AppConfig, src ContentFileConfig) error {
	setString(&dst.Content.Backend, src.Backend)
	setString(&dst.Content.SQLitePath, os.ExpandEnv(src.SQLitePath))
	setString(&dst.Content.BadgerDir, os.ExpandEnv(src.BadgerDir))
	setString(&dst.Content.SeedFile, os.ExpandEnv(src.SeedFile))
	setPtr(&dst.Content.WatchSeed, src.WatchSeed)
	setString(&dst.Content.Cache, src.Cache)
	return setDuration(&dst.Content.CacheTTL, "content.cacheTTL", src.CacheTTL)
}

func mergeFileIngest(dst *AppConfig, src IngestFileConfig) error {
	setString(&dst.Ingest.Sink, src.Sink)
	setPtr(&dst.Ingest.MaxBodyBytes, src.MaxBodyBytes)
	setPtr(&dst.Ingest.RateLimit, src.RateLimit)
	setString(&dst.Ingest.Stream, src.Stream)
	setPtr(&dst.Ingest.StreamMaxLen, src.StreamMaxLen)
	return setDuration(&dst.Ingest.RateWindow, "ingest.rateWindow", src.RateWindow)
}

func mergeFileDelivery(dst *AppConfig, src DeliveryFileConfig) error {
	setString(&dst.Delivery.Endpoint, src.Endpoint)
	setPtr(&dst.Delivery.QueueSize, src.QueueSize)
	setPtr(&dst.Delivery.Rate, src.Rate)
	setPtr(&dst.Delivery.Burst, src.Burst)
	return setDuration(&dst.Delivery.Timeout, "delivery.timeout", src.Timeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	*dst = d
	return nil
}
