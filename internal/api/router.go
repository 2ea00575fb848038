// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api assembles the public HTTP surface.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/readerpulse/internal/api/middleware"
	"github.com/ManuGH/readerpulse/internal/api/problem"
	"github.com/ManuGH/readerpulse/internal/health"
)

// Deps are the handlers and settings the router is built from.
type Deps struct {
	Content http.Handler
	Ingest  http.Handler
	Health  *health.Manager

	CORSOrigins []string
	// IngestRateLimit is requests per IngestRateWindow per client IP; 0 disables.
	IngestRateLimit  int
	IngestRateWindow time.Duration
	// TracingService names the server tracer; empty disables request spans.
	TracingService string
}

// NewRouter wires the routes:
//
//	GET  /healthz
//	GET  /readyz
//	GET  /api/v1/content/{id}
//	POST /api/v1/events
func NewRouter(d Deps) http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:            len(d.CORSOrigins) > 0,
		AllowedOrigins:        d.CORSOrigins,
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        d.TracingService,
		EnableLogging:         true,
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.NotFound(w, r, "system/not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusMethodNotAllowed, "system/method_not_allowed", "Method Not Allowed", problem.CodeMethodNotAllow, "", nil)
	})

	if d.Health != nil {
		r.Get("/healthz", d.Health.ServeHealth)
		r.Get("/readyz", d.Health.ServeReady)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if d.Content != nil {
			r.Method(http.MethodGet, "/content/{id}", d.Content)
		}
		if d.Ingest != nil {
			r.With(middleware.RateLimit(middleware.RateLimitConfig{
				RequestLimit: d.IngestRateLimit,
				WindowSize:   d.IngestRateWindow,
			})).Method(http.MethodPost, "/events", d.Ingest)
		}
	})
	return r
}
