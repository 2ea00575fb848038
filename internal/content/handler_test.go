// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/readerpulse/internal/access"
	"github.com/ManuGH/readerpulse/internal/api/problem"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newTestService(t, sampleItem("deep-dive", access.TierPremium, 8))
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/v1/content/{id}", NewHandler(svc, HeaderResolver{Header: "X-Reader-Entitlement"}))
	return r
}

func TestHandlerReturnsTruncatedPayload(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X-Reader-Entitlement", rec.Header().Get("Vary"))
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))

	var p Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Len(t, p.Blocks, 3)
	assert.Equal(t, 5, p.HiddenCount)
	assert.NotContains(t, rec.Body.String(), "deep-dive-d", "withheld blocks must not be serialised")
}

func TestHandlerHonoursEntitlementHeader(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil)
	req.Header.Set("X-Reader-Entitlement", "Premium")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var p Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.HasFullAccess)
	assert.Len(t, p.Blocks, 8)
}

func TestHandlerUnknownEntitlementFailsClosed(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/deep-dive", nil)
	req.Header.Set("X-Reader-Entitlement", "root")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var p Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.False(t, p.HasFullAccess)
	assert.Len(t, p.Blocks, 3)
}

func TestHandlerNotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, problem.ContentType, rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "content/not_found", body["type"])
}
