// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var accessDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readerpulse_access_decisions_total",
	Help: "Content access decisions, by tier, entitlement and outcome.",
}, []string{"tier", "entitlement", "full_access"})

// RecordAccessDecision counts one served content decision.
// Callers pass parsed tier and entitlement values.
func RecordAccessDecision(tier, entitlement string, fullAccess bool) {
	accessDecisionsTotal.WithLabelValues(
		normalizeTier(tier),
		normalizeEntitlement(entitlement),
		strconv.FormatBool(fullAccess),
	).Inc()
}

func normalizeTier(t string) string {
	switch t {
	case "free", "premium", "subscriber_only":
		return t
	default:
		return "unknown"
	}
}

func normalizeEntitlement(e string) string {
	switch e {
	case "free", "premium", "subscriber":
		return e
	default:
		return "unknown"
	}
}
