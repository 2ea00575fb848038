// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package delivery

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/platform/httpx"
	platformnet "github.com/ManuGH/readerpulse/internal/platform/net"
)

// KeepaliveClient posts each payload from its own goroutine. The request is
// bounded by its own timeout rather than by the caller's context.
type KeepaliveClient struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	observer Observer
	logger   zerolog.Logger
	wg       sync.WaitGroup

	mu    sync.Mutex
	drain chan struct{} // closed once wg reaches zero; shared by concurrent Waits
}

// NewKeepaliveClient validates endpoint and builds a client. client may be nil.
func NewKeepaliveClient(endpoint string, timeout time.Duration, client *http.Client, observer Observer) (*KeepaliveClient, error) {
	if _, err := platformnet.ParseEndpoint(endpoint); err != nil {
		return nil, fmt.Errorf("keepalive: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if client == nil {
		client = httpx.NewTracedClient(timeout, "keepalive")
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &KeepaliveClient{
		endpoint: endpoint,
		client:   client,
		timeout:  timeout,
		observer: observer,
		logger:   xglog.WithComponent("keepalive"),
	}, nil
}

// PostKeepalive implements Keepalive.
func (k *KeepaliveClient) PostKeepalive(ctx context.Context, body []byte) error {
	ctx = context.WithoutCancel(ctx)
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		reqCtx, cancel := context.WithTimeout(ctx, k.timeout)
		defer cancel()
		if err := post(reqCtx, k.client, k.endpoint, body); err != nil {
			k.observer.Dropped(ReasonPostFailed)
			k.logger.Debug().
				Err(err).
				Str(xglog.FieldEvent, "keepalive.post_failed").
				Str(xglog.FieldEndpoint, platformnet.Redact(k.endpoint)).
				Msg("keepalive post failed")
		}
	}()
	return nil
}

// Wait blocks until in-flight posts finish or ctx expires. Waits that give
// up early share one watcher goroutine, which exits once the posts finish.
func (k *KeepaliveClient) Wait(ctx context.Context) error {
	select {
	case <-k.drained():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *KeepaliveClient) drained() <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.drain != nil {
		return k.drain
	}
	ch := make(chan struct{})
	k.drain = ch
	go func() {
		k.wg.Wait()
		k.mu.Lock()
		k.drain = nil
		k.mu.Unlock()
		close(ch)
	}()
	return ch
}
