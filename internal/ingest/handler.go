// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ingest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/readerpulse/internal/api/problem"
	"github.com/ManuGH/readerpulse/internal/engagement"
	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/metrics"
	"github.com/ManuGH/readerpulse/internal/telemetry"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 64 << 10

// publishTimeout bounds a single Publish made on behalf of a request.
const publishTimeout = 2 * time.Second

// Handler serves POST /api/v1/events.
//
// Well-formed bodies always get 204: invalid records are counted and
// dropped, and sink failures are logged. Beacon senders never read the
// response, so there is nothing useful to report back.
type Handler struct {
	sink    Sink
	maxBody int64
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// NewHandler builds a Handler.
func NewHandler(sink Sink, maxBody int64, logger zerolog.Logger) *Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handler{
		sink:    sink,
		maxBody: maxBody,
		logger:  logger,
		tracer:  telemetry.Tracer("readerpulse/ingest"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ingest.events")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.RecordIngestRejected(metrics.IngestReasonTooLarge)
			span.SetStatus(codes.Error, "body too large")
			problem.Write(w, r, http.StatusRequestEntityTooLarge, "ingest/too_large", "Payload Too Large", problem.CodeTooLarge, "", nil)
			return
		}
		metrics.RecordIngestRejected(metrics.IngestReasonMalformed)
		problem.BadRequest(w, r, "ingest/malformed", "could not read body")
		return
	}

	payloads, err := Decode(body)
	if err != nil {
		metrics.RecordIngestRejected(metrics.IngestReasonMalformed)
		span.SetStatus(codes.Error, "malformed")
		problem.BadRequest(w, r, "ingest/malformed", "body must be a record or an array of records")
		return
	}
	if len(payloads) > MaxBatch {
		metrics.RecordIngestRejected(metrics.IngestReasonTooMany)
		problem.Write(w, r, http.StatusRequestEntityTooLarge, "ingest/too_many", "Payload Too Large", problem.CodeTooLarge, "too many records in one request", nil)
		return
	}

	logger := xglog.WithContext(ctx, h.logger)
	records := make([]engagement.Record, 0, len(payloads))
	for _, p := range payloads {
		rec, err := Validate(p)
		if err != nil {
			metrics.RecordIngestRejected(metrics.IngestReasonInvalid)
			logger.Debug().Err(err).Str(xglog.FieldEvent, "record.rejected").Msg("invalid engagement record")
			continue
		}
		records = append(records, rec)
	}
	span.SetAttributes(telemetry.IngestAttributes(len(records), len(payloads)-len(records))...)

	if len(records) > 0 {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err := h.sink.Publish(pctx, records)
		cancel()
		if err != nil {
			metrics.RecordSinkError(h.sink.Name())
			span.RecordError(err)
			logger.Warn().Err(err).
				Str(xglog.FieldEvent, "sink.publish_failed").
				Str("sink", h.sink.Name()).
				Int("records", len(records)).
				Msg("failed to publish engagement records")
		} else {
			metrics.RecordIngestAccepted(len(records))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
