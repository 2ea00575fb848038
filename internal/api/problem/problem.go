// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package problem writes RFC 7807 problem details responses.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/ManuGH/readerpulse/internal/log"
)

const (
	// HeaderRequestID carries the request correlation ID.
	HeaderRequestID = "X-Request-ID"
	// JSONKeyRequestID is the problem body key for the request ID.
	JSONKeyRequestID = "requestId"
	// ContentType is the media type of every problem response.
	ContentType = "application/problem+json"
)

// Stable problem codes.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeBadRequest     = "BAD_REQUEST"
	CodeTooLarge       = "PAYLOAD_TOO_LARGE"
	CodeRateLimited    = "RATE_LIMITED"
	CodeUnavailable    = "UNAVAILABLE"
	CodeInternal       = "INTERNAL"
	CodeMethodNotAllow = "METHOD_NOT_ALLOWED"
)

// Write writes a problem body.
//
//   - type: machine identifier, e.g. "content/not_found".
//   - title: short human label.
//   - code: stable short code for clients.
//   - detail: explanation of this occurrence; omitted when empty.
func Write(w http.ResponseWriter, r *http.Request, status int, problemType, title, code, detail string, extra map[string]any) {
	logger := log.WithComponent("problem")

	reqID := ""
	instance := ""
	if r != nil {
		reqID = log.RequestIDFromContext(r.Context())
		instance = r.URL.EscapedPath()
	}
	if reqID == "" {
		reqID = w.Header().Get(HeaderRequestID)
	}

	res := map[string]any{
		"type":   problemType,
		"title":  title,
		"status": status,
		"code":   code,
	}
	if reqID != "" {
		res[JSONKeyRequestID] = reqID
		w.Header().Set(HeaderRequestID, reqID)
	}
	if detail != "" {
		res["detail"] = detail
	}
	if instance != "" {
		res["instance"] = instance
	}
	for k, v := range extra {
		switch k {
		case "type", "title", "status", "detail", "instance", "code", JSONKeyRequestID:
			logger.Warn().Str("key", k).Str("problem_type", problemType).Msg("ignoring reserved key in problem extras")
			continue
		}
		res[k] = v
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Error().Err(err).Str("type", problemType).Int("status", status).Msg("failed to encode problem response")
	}
}

// NotFound writes a 404 problem.
func NotFound(w http.ResponseWriter, r *http.Request, problemType, detail string) {
	Write(w, r, http.StatusNotFound, problemType, "Not Found", CodeNotFound, detail, nil)
}

// BadRequest writes a 400 problem.
func BadRequest(w http.ResponseWriter, r *http.Request, problemType, detail string) {
	Write(w, r, http.StatusBadRequest, problemType, "Bad Request", CodeBadRequest, detail, nil)
}

// Internal writes a 500 problem without leaking err.
func Internal(w http.ResponseWriter, r *http.Request, problemType string) {
	Write(w, r, http.StatusInternalServerError, problemType, "Internal Server Error", CodeInternal, "", nil)
}
