// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	xglog "github.com/ManuGH/readerpulse/internal/log"
)

// StackConfig selects the optional layers of the ingress stack.
type StackConfig struct {
	EnableCORS     bool
	AllowedOrigins []string

	EnableSecurityHeaders bool
	CSP                   string

	EnableMetrics bool
	// TracingService names server spans; empty disables tracing.
	TracingService string
	EnableLogging  bool
}

// Chain returns the ingress middleware in application order. Recoverer and
// RequestID are always first so every later layer sees a request ID and
// panics in any layer become problem responses.
func Chain(cfg StackConfig) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{Recoverer, RequestID}
	if cfg.EnableCORS {
		chain = append(chain, CORS(cfg.AllowedOrigins))
	}
	if cfg.EnableSecurityHeaders {
		chain = append(chain, SecurityHeaders(cfg.CSP))
	}
	if cfg.EnableMetrics {
		chain = append(chain, Metrics())
	}
	if cfg.TracingService != "" {
		chain = append(chain, Tracing(cfg.TracingService))
	}
	if cfg.EnableLogging {
		chain = append(chain, xglog.Middleware())
	}
	return chain
}

// NewRouter returns a chi router with Chain(cfg) installed. Rate limits are
// attached per route by the caller.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Chain(cfg)...)
	return r
}
