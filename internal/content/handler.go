// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/readerpulse/internal/api/problem"
	xglog "github.com/ManuGH/readerpulse/internal/log"
)

// Handler serves GET /api/v1/content/{id}.
type Handler struct {
	svc      *Service
	resolver EntitlementResolver
}

// NewHandler builds a Handler.
func NewHandler(svc *Service, resolver EntitlementResolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ent := h.resolver.Resolve(r)

	payload, err := h.svc.Serve(r.Context(), id, ent)
	switch {
	case errors.Is(err, ErrNotFound):
		problem.NotFound(w, r, "content/not_found", "no content with this id")
		return
	case err != nil:
		logger := xglog.WithComponentFromContext(r.Context(), "content")
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "content.lookup_failed").
			Str(xglog.FieldContentID, id).
			Msg("content lookup failed")
		problem.Internal(w, r, "content/lookup_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	// Payload shape depends on the entitlement header.
	w.Header().Set("Cache-Control", "private, no-store")
	if hr, ok := h.resolver.(HeaderResolver); ok && hr.Header != "" {
		w.Header().Add("Vary", hr.Header)
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "content")
		logger.Debug().Err(err).Msg("write content response")
	}
}
