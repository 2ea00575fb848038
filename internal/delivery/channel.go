// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package delivery hands engagement records to the collection endpoint.
//
// Delivery is fire-and-forget. A Channel prefers a beacon transport that
// outlives the caller, falls back to a keepalive request detached from the
// caller's context, and otherwise drops the record. Nothing is retried and no
// failure reaches the visitor.
package delivery

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ManuGH/readerpulse/internal/engagement"
	xglog "github.com/ManuGH/readerpulse/internal/log"
)

// Transport names used for logging and metrics.
const (
	TransportBeacon    = "beacon"
	TransportKeepalive = "keepalive"
)

// Drop reasons used for logging and metrics.
const (
	ReasonEncode          = "encode"
	ReasonBeaconRefused   = "beacon_refused"
	ReasonKeepaliveFailed = "keepalive_failed"
	ReasonNoTransport     = "no_transport"
	ReasonPostFailed      = "post_failed"
)

var (
	// ErrBeaconRefused is reported when a beacon transport does not accept a payload.
	ErrBeaconRefused = errors.New("beacon refused payload")
	// ErrNoTransport is reported when no transport is configured.
	ErrNoTransport = errors.New("no delivery transport available")
)

// Beacon queues a payload for transmission that survives the caller's
// teardown. It must not block and reports whether the payload was accepted.
type Beacon interface {
	SendBeacon(body []byte) bool
}

// Keepalive starts an asynchronous request that is not cancelled with ctx.
// A returned error means the request could not be started at all.
type Keepalive interface {
	PostKeepalive(ctx context.Context, body []byte) error
}

// Observer is notified of delivery outcomes. Implementations must be cheap.
type Observer interface {
	Delivered(transport string)
	Dropped(reason string)
}

type nopObserver struct{}

func (nopObserver) Delivered(string) {}
func (nopObserver) Dropped(string)   {}

// Channel selects a transport for each record.
type Channel struct {
	beacon    Beacon
	keepalive Keepalive
	observer  Observer
	logger    zerolog.Logger
}

// Option customises a Channel.
type Option func(*Channel)

// WithObserver reports outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Channel) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Channel) { c.logger = l }
}

// NewChannel builds a channel. Either transport may be nil.
func NewChannel(beacon Beacon, keepalive Keepalive, opts ...Option) *Channel {
	c := &Channel{
		beacon:    beacon,
		keepalive: keepalive,
		observer:  nopObserver{},
		logger:    xglog.WithComponent("delivery"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode renders a record in the collection endpoint's wire shape.
func Encode(rec engagement.Record) ([]byte, error) {
	return json.Marshal(rec.Payload())
}

// Deliver implements engagement.Sink.
func (c *Channel) Deliver(rec engagement.Record) {
	c.DeliverContext(context.Background(), rec)
}

// DeliverContext sends rec using the first transport that accepts it.
// Values on ctx (trace context) propagate; its cancellation does not.
func (c *Channel) DeliverContext(ctx context.Context, rec engagement.Record) {
	body, err := Encode(rec)
	if err != nil {
		c.drop(rec, ReasonEncode, err)
		return
	}

	if c.beacon != nil {
		if c.beacon.SendBeacon(body) {
			c.delivered(rec, TransportBeacon)
			return
		}
		c.logger.Debug().
			Str(xglog.FieldEvent, "record.beacon_refused").
			Str(xglog.FieldContentID, rec.ContentID).
			Msg("beacon refused record, falling back")
	}

	if c.keepalive == nil {
		reason := ReasonNoTransport
		err := ErrNoTransport
		if c.beacon != nil {
			reason, err = ReasonBeaconRefused, ErrBeaconRefused
		}
		c.drop(rec, reason, err)
		return
	}

	if err := c.keepalive.PostKeepalive(context.WithoutCancel(ctx), body); err != nil {
		c.drop(rec, ReasonKeepaliveFailed, err)
		return
	}
	c.delivered(rec, TransportKeepalive)
}

func (c *Channel) delivered(rec engagement.Record, transport string) {
	c.observer.Delivered(transport)
	c.logger.Debug().
		Str(xglog.FieldEvent, "record.handed_off").
		Str(xglog.FieldContentID, rec.ContentID).
		Str(xglog.FieldTransport, transport).
		Msg("record handed to transport")
}

func (c *Channel) drop(rec engagement.Record, reason string, err error) {
	c.observer.Dropped(reason)
	c.logger.Debug().
		Err(err).
		Str(xglog.FieldEvent, "record.dropped").
		Str(xglog.FieldContentID, rec.ContentID).
		Str(xglog.FieldReason, reason).
		Msg("record dropped")
}
