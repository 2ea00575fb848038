// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ingest

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ManuGH/readerpulse/internal/delivery"
	"github.com/ManuGH/readerpulse/internal/engagement"
	xglog "github.com/ManuGH/readerpulse/internal/log"
)

// Sink hands accepted records downstream.
type Sink interface {
	Name() string
	Publish(ctx context.Context, records []engagement.Record) error
}

// LogSink writes one structured line per record.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink builds a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Publish(_ context.Context, records []engagement.Record) error {
	for _, r := range records {
		s.logger.Info().
			Str(xglog.FieldEvent, "record.ingested").
			Str(xglog.FieldContentID, r.ContentID).
			Str(xglog.FieldPath, r.Path).
			Int(xglog.FieldTimeOnPage, r.TimeOnPageSeconds).
			Int(xglog.FieldScrollDepth, r.ScrollDepthPercent).
			Time("ts", r.At).
			Msg("engagement record")
	}
	return nil
}

// RedisStreamSink appends records to a Redis stream trimmed to roughly maxLen entries.
type RedisStreamSink struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamSink builds a RedisStreamSink. maxLen <= 0 disables trimming.
func NewRedisStreamSink(client *redis.Client, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisStreamSink) Name() string { return "redis" }

func (s *RedisStreamSink) Publish(ctx context.Context, records []engagement.Record) error {
	if len(records) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, r := range records {
		p := r.Payload()
		args := &redis.XAddArgs{
			Stream: s.stream,
			Values: map[string]any{
				"event_type":   p.EventType,
				"ts":           p.TS,
				"path":         p.Path,
				"content_id":   p.ContentID,
				"time_on_page": p.TimeOnPage,
				"scroll_depth": p.ScrollDepth,
			},
		}
		if s.maxLen > 0 {
			args.MaxLen = s.maxLen
			args.Approx = true
		}
		pipe.XAdd(ctx, args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

// ForwardSink relays records to another collector through a delivery.Channel.
// Outcomes are reported by the channel's observer; Publish never fails.
type ForwardSink struct {
	channel *delivery.Channel
}

// NewForwardSink builds a ForwardSink.
func NewForwardSink(ch *delivery.Channel) *ForwardSink {
	return &ForwardSink{channel: ch}
}

func (s *ForwardSink) Name() string { return "forward" }

func (s *ForwardSink) Publish(ctx context.Context, records []engagement.Record) error {
	for _, r := range records {
		s.channel.DeliverContext(ctx, r)
	}
	return nil
}
