// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/readerpulse/internal/delivery"
	"github.com/ManuGH/readerpulse/internal/engagement"
)

func sampleRecords(n int) []engagement.Record {
	out := make([]engagement.Record, n)
	for i := range out {
		out[i] = engagement.Record{
			ContentID:          "c",
			Path:               "/c",
			TimeOnPageSeconds:  i + 1,
			ScrollDepthPercent: 10,
			At:                 time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC),
		}
	}
	return out
}

func TestRedisStreamSinkAppends(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sink := NewRedisStreamSink(client, "readerpulse:events", 0)
	require.NoError(t, sink.Publish(context.Background(), sampleRecords(3)))

	entries, err := client.XRange(context.Background(), "readerpulse:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "page_view", entries[0].Values["event_type"])
	assert.Equal(t, "c", entries[0].Values["content_id"])
	assert.Equal(t, "2", entries[1].Values["time_on_page"])
	assert.Equal(t, "2026-01-01T00:00:02Z", entries[2].Values["ts"])
}

func TestRedisStreamSinkTrims(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sink := NewRedisStreamSink(client, "s", 2)
	require.NoError(t, sink.Publish(context.Background(), sampleRecords(5)))

	n, err := client.XLen(context.Background(), "s").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, n, int64(5))
	assert.GreaterOrEqual(t, n, int64(2))
}

func TestRedisStreamSinkReportsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	err := NewRedisStreamSink(client, "s", 0).Publish(context.Background(), sampleRecords(1))
	assert.Error(t, err)
}

func TestLogSinkWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))
	require.NoError(t, sink.Publish(context.Background(), sampleRecords(1)))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "record.ingested", line["event"])
	assert.Equal(t, "c", line["content_id"])
	assert.EqualValues(t, 1, line["time_on_page"])
}

func TestForwardSinkRelaysThroughDispatcher(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies [][]byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, b)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	cfg := delivery.DefaultDispatcherConfig(srv.URL)
	cfg.Client = srv.Client()
	d := delivery.NewDispatcher(cfg)
	sink := NewForwardSink(delivery.NewChannel(d, nil))

	require.NoError(t, sink.Publish(context.Background(), sampleRecords(2)))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	var p engagement.Payload
	require.NoError(t, json.Unmarshal(bodies[0], &p))
	assert.Equal(t, 1, p.TimeOnPage)
}
