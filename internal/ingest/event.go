// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/readerpulse/internal/engagement"
)

// ErrInvalidRecord is returned for well-formed JSON that breaks the record contract.
var ErrInvalidRecord = errors.New("invalid engagement record")

// ErrMalformed is returned when a body is not a record or an array of records.
var ErrMalformed = errors.New("malformed request body")

// MaxBatch bounds the records accepted in one request.
const MaxBatch = 50

// Validate checks p against the page_view contract and converts it.
func Validate(p engagement.Payload) (engagement.Record, error) {
	if p.EventType != engagement.EventTypePageView {
		return engagement.Record{}, fmt.Errorf("%w: event_type %q", ErrInvalidRecord, p.EventType)
	}
	if p.ContentID == "" {
		return engagement.Record{}, fmt.Errorf("%w: empty content_id", ErrInvalidRecord)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.TS)
	if err != nil {
		return engagement.Record{}, fmt.Errorf("%w: ts: %v", ErrInvalidRecord, err)
	}
	if p.TimeOnPage < 1 {
		return engagement.Record{}, fmt.Errorf("%w: time_on_page %d", ErrInvalidRecord, p.TimeOnPage)
	}
	if p.ScrollDepth < 0 || p.ScrollDepth > 100 {
		return engagement.Record{}, fmt.Errorf("%w: scroll_depth %d", ErrInvalidRecord, p.ScrollDepth)
	}
	return engagement.Record{
		ContentID:          p.ContentID,
		Path:               p.Path,
		TimeOnPageSeconds:  p.TimeOnPage,
		ScrollDepthPercent: p.ScrollDepth,
		At:                 ts.UTC(),
	}, nil
}

// Decode accepts either a single record object or an array of them.
func Decode(body []byte) ([]engagement.Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrMalformed
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var out []engagement.Payload
	switch trimmed[0] {
	case '[':
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		var p engagement.Payload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out = []engagement.Payload{p}
	default:
		return nil, ErrMalformed
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	return out, nil
}
