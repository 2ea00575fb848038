// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import "time"

// EventTypePageView is the only event type this package emits.
const EventTypePageView = "page_view"

// Record is one immutable engagement summary.
type Record struct {
	ContentID          string
	Path               string
	TimeOnPageSeconds  int
	ScrollDepthPercent int
	At                 time.Time
}

// Payload is the wire contract shared with the collection endpoint.
type Payload struct {
	EventType   string `json:"event_type"`
	TS          string `json:"ts"`
	Path        string `json:"path"`
	ContentID   string `json:"content_id"`
	TimeOnPage  int    `json:"time_on_page"`
	ScrollDepth int    `json:"scroll_depth"`
}

// Payload converts r to its wire shape.
func (r Record) Payload() Payload {
	return Payload{
		EventType:   EventTypePageView,
		TS:          r.At.UTC().Format(time.RFC3339Nano),
		Path:        r.Path,
		ContentID:   r.ContentID,
		TimeOnPage:  r.TimeOnPageSeconds,
		ScrollDepth: r.ScrollDepthPercent,
	}
}

// Sink accepts records. Deliver must not block and must not report failure:
// engagement data is allowed to be lost.
type Sink interface {
	Deliver(Record)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Record)

func (f SinkFunc) Deliver(r Record) { f(r) }
