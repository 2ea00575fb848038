// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingestAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readerpulse_ingest_accepted_total",
		Help: "Engagement records accepted by the collection endpoint.",
	})

	ingestRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readerpulse_ingest_rejected_total",
		Help: "Engagement requests or records rejected, by reason.",
	}, []string{"reason"})

	ingestSinkErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readerpulse_ingest_sink_errors_total",
		Help: "Records a sink failed to forward, by sink.",
	}, []string{"sink"})
)

// Ingest rejection reasons.
const (
	IngestReasonMalformed = "malformed"
	IngestReasonInvalid   = "invalid"
	IngestReasonTooLarge  = "too_large"
	IngestReasonTooMany   = "too_many"
)

// RecordIngestAccepted counts n accepted records.
func RecordIngestAccepted(n int) {
	if n > 0 {
		ingestAcceptedTotal.Add(float64(n))
	}
}

// RecordIngestRejected counts one rejection.
func RecordIngestRejected(reason string) {
	switch reason {
	case IngestReasonMalformed, IngestReasonInvalid, IngestReasonTooLarge, IngestReasonTooMany:
	default:
		reason = "unknown"
	}
	ingestRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordSinkError counts a forwarding failure for sink ("redis", "log").
func RecordSinkError(sink string) {
	ingestSinkErrorsTotal.WithLabelValues(sink).Inc()
}
