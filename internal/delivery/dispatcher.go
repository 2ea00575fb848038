// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/platform/httpx"
	platformnet "github.com/ManuGH/readerpulse/internal/platform/net"
)

// DispatcherConfig configures the beacon dispatcher.
type DispatcherConfig struct {
	Endpoint  string
	QueueSize int
	// Rate and Burst pace outbound posts. Zero Rate disables pacing.
	Rate    rate.Limit
	Burst   int
	Timeout time.Duration
	// Client overrides the outbound client (tests).
	Client   *http.Client
	Observer Observer
	Logger   *zerolog.Logger
}

// DefaultDispatcherConfig returns sensible defaults for endpoint.
func DefaultDispatcherConfig(endpoint string) DispatcherConfig {
	return DispatcherConfig{
		Endpoint:  endpoint,
		QueueSize: 256,
		Rate:      50,
		Burst:     100,
		Timeout:   5 * time.Second,
	}
}

// Dispatcher is a Beacon for Go hosts: a bounded queue drained by a single
// worker. Queued payloads are posted even after the submitting caller is gone
// and are drained on Close.
type Dispatcher struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	observer Observer
	logger   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []byte
	done   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDispatcher starts the worker goroutine.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	client := cfg.Client
	if client == nil {
		client = httpx.NewTracedClient(cfg.Timeout, "beacon")
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(cfg.Rate, max(cfg.Burst, 1))
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := xglog.WithComponent("dispatcher")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		endpoint: cfg.Endpoint,
		client:   client,
		limiter:  limiter,
		observer: observer,
		logger:   logger,
		queue:    make(chan []byte, cfg.QueueSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	go d.run()
	return d
}

// SendBeacon implements Beacon. It never blocks.
func (d *Dispatcher) SendBeacon(body []byte) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- body:
		return true
	default:
		return false
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for body := range d.queue {
		if err := d.limiter.Wait(d.ctx); err != nil {
			d.observer.Dropped(ReasonPostFailed)
			continue
		}
		if err := d.post(d.ctx, body); err != nil {
			d.observer.Dropped(ReasonPostFailed)
			d.logger.Debug().
				Err(err).
				Str(xglog.FieldEvent, "beacon.post_failed").
				Str(xglog.FieldEndpoint, platformnet.Redact(d.endpoint)).
				Msg("beacon post failed")
		}
	}
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	return post(ctx, d.client, d.endpoint, body)
}

// Close stops accepting payloads and drains the queue. If ctx expires first,
// in-flight and queued posts are abandoned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func post(ctx context.Context, client *http.Client, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post: unexpected status %d", resp.StatusCode)
	}
	return nil
}
