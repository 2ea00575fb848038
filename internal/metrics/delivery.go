// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics provides Prometheus metrics for readerpulse.
// Labels are bounded enums; content and request identifiers are never labels.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readerpulse_records_delivered_total",
		Help: "Engagement records handed to a transport, by transport.",
	}, []string{"transport"})

	recordsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readerpulse_records_dropped_total",
		Help: "Engagement records dropped without delivery, by reason.",
	}, []string{"reason"})
)

// DeliveryObserver reports delivery outcomes to Prometheus.
type DeliveryObserver struct{}

// Delivered counts a record handed to transport.
func (DeliveryObserver) Delivered(transport string) {
	recordsDeliveredTotal.WithLabelValues(normalizeTransport(transport)).Inc()
}

// Dropped counts a record dropped for reason.
func (DeliveryObserver) Dropped(reason string) {
	recordsDroppedTotal.WithLabelValues(normalizeDropReason(reason)).Inc()
}

func normalizeTransport(t string) string {
	switch t = strings.ToLower(strings.TrimSpace(t)); t {
	case "beacon", "keepalive":
		return t
	default:
		return "unknown"
	}
}

func normalizeDropReason(r string) string {
	switch r = strings.ToLower(strings.TrimSpace(r)); r {
	case "encode", "beacon_refused", "keepalive_failed", "no_transport", "post_failed":
		return r
	default:
		return "unknown"
	}
}
