// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

//go:build js && wasm

package jshost

import (
	"context"
	"syscall/js"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/readerpulse/internal/delivery"
	"github.com/ManuGH/readerpulse/internal/engagement"
)

func jsFunc(body string) js.Value {
	return js.Global().Get("Function").New(body)
}

// fakeWindow builds a window with the given sendBeacon and fetch bodies.
func fakeWindow(beaconBody, fetchBody string) *Document {
	win := js.Global().Get("Object").New()
	nav := js.Global().Get("Object").New()
	nav.Set("sendBeacon", jsFunc(beaconBody))
	win.Set("navigator", nav)
	win.Set("fetch", jsFunc(fetchBody))
	return &Document{window: win, doc: js.Undefined()}
}

const (
	throwTypeError = "throw new TypeError('Failed to execute: invalid URL')"
	acceptBeacon   = "return true"
	rejectFetch    = "return Promise.reject(new TypeError('offline'))"
)

func TestSendBeaconReportsThrowAsRefusal(t *testing.T) {
	d := fakeWindow(throwTypeError, rejectFetch)
	b := d.NewBeacon("javascript:x")
	require.NotNil(t, b)

	assert.NotPanics(t, func() {
		assert.False(t, b.SendBeacon([]byte(`{}`)))
	})
}

func TestSendBeaconAccepted(t *testing.T) {
	d := fakeWindow(acceptBeacon, rejectFetch)
	assert.True(t, d.NewBeacon("/api/v1/events").SendBeacon([]byte(`{}`)))
}

func TestPostKeepaliveReturnsThrowAsError(t *testing.T) {
	d := fakeWindow(acceptBeacon, throwTypeError)
	k := d.NewKeepalive("javascript:x")
	require.NotNil(t, k)

	err := k.PostKeepalive(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrTransportThrew)
}

func TestPostKeepaliveSwallowsRejection(t *testing.T) {
	d := fakeWindow(acceptBeacon, rejectFetch)
	assert.NoError(t, d.NewKeepalive("/api/v1/events").PostKeepalive(context.Background(), []byte(`{}`)))
}

type countingObserver struct{ delivered, dropped []string }

func (o *countingObserver) Delivered(tr string) { o.delivered = append(o.delivered, tr) }
func (o *countingObserver) Dropped(r string)    { o.dropped = append(o.dropped, r) }

func TestChannelDropsWhenBothTransportsThrow(t *testing.T) {
	d := fakeWindow(throwTypeError, throwTypeError)
	obs := &countingObserver{}
	ch := delivery.NewChannel(d.NewBeacon("javascript:x"), d.NewKeepalive("javascript:x"),
		delivery.WithObserver(obs), delivery.WithLogger(zerolog.Nop()))

	assert.NotPanics(t, func() {
		ch.Deliver(engagement.Record{ContentID: "post-1", TimeOnPageSeconds: 3, At: time.Now()})
	})
	assert.Empty(t, obs.delivered)
	assert.Equal(t, []string{delivery.ReasonKeepaliveFailed}, obs.dropped)
}
