// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/readerpulse/internal/config"
	"github.com/ManuGH/readerpulse/internal/content"
)

const bootstrapSeed = `items:
  - id: deep-dive
    title: Deep Dive
    tier: premium
    blocks:
      - {kind: paragraph, text: one}
      - {kind: paragraph, text: two}
      - {kind: paragraph, text: three}
      - {kind: paragraph, text: four}
      - {kind: paragraph, text: five}
`

func testAppConfig(t *testing.T) config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(bootstrapSeed), 0o600))

	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.Server.ListenAddr = "127.0.0.1:0"
	cfg.Server.MetricsAddr = ""
	cfg.Content.SQLitePath = filepath.Join(dir, "content.db")
	cfg.Content.SeedFile = seed
	return cfg
}

func shutdown(t *testing.T, rt *Runtime) {
	t.Helper()
	// Build registers hooks without starting; run them through a started manager.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Manager.Start(ctx) }()
	<-rt.Manager.(*manager).ready
	cancel()
	require.NoError(t, <-done)
}

func TestBuildServesSeededContent(t *testing.T) {
	rt, err := Build(context.Background(), testAppConfig(t))
	require.NoError(t, err)
	defer shutdown(t, rt)

	rec := httptest.NewRecorder()
	rt.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p content.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Len(t, p.Blocks, 3)
	assert.Equal(t, 2, p.HiddenCount)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil)
	req.Header.Set(config.DefaultEntitlementHeader, "subscriber")
	rec = httptest.NewRecorder()
	rt.Handler.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.HasFullAccess)

	rec = httptest.NewRecorder()
	rt.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildWithRedisStreamSink(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testAppConfig(t)
	cfg.Redis.Addr = mr.Addr()
	cfg.Ingest.Sink = config.SinkRedis
	cfg.Content.Cache = config.CacheRedis
	cfg.Content.Backend = config.BackendBadger
	cfg.Content.BadgerDir = ""

	rt, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer shutdown(t, rt)

	body := `{"event_type":"page_view","ts":"2026-03-04T04:06:07Z","path":"/p","content_id":"deep-dive","time_on_page":5,"scroll_depth":20}`
	rec := httptest.NewRecorder()
	rt.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	entries, err := mr.Stream(cfg.Ingest.Stream)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Cached lookups land in Redis under the cache prefix.
	rec = httptest.NewRecorder()
	rt.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mr.Exists(cacheKeyPrefix+"content:deep-dive"))
}

func TestBuildFailsOnUnreachableRedis(t *testing.T) {
	cfg := testAppConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Ingest.Sink = config.SinkRedis

	_, err := Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "redis")
}

func TestBuildFailsOnBadSeed(t *testing.T) {
	cfg := testAppConfig(t)
	require.NoError(t, os.WriteFile(cfg.Content.SeedFile, []byte("items: [{id: x}]\n"), 0o600))

	_, err := Build(context.Background(), cfg)
	assert.ErrorIs(t, err, content.ErrInvalidItem)
}
