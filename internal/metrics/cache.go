// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readerpulse_content_cache_lookups_total",
		Help: "Content cache lookups, by result (hit/miss).",
	}, []string{"result"})

	contentItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readerpulse_content_items",
		Help: "Content items loaded by the last seed run.",
	})
)

// RecordCacheHit counts a content cache hit.
func RecordCacheHit() { cacheLookupsTotal.WithLabelValues("hit").Inc() }

// RecordCacheMiss counts a content cache miss.
func RecordCacheMiss() { cacheLookupsTotal.WithLabelValues("miss").Inc() }

// SetContentItems records the size of the seeded catalogue.
func SetContentItems(n int) { contentItems.Set(float64(n)) }
