// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package net

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseEndpoint accepts an absolute http(s) collector URL. Credentials and
// fragments are rejected since they would leak into logs or be dropped by
// browsers.
func ParseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	if u.User != nil || u.Fragment != "" {
		return nil, fmt.Errorf("invalid endpoint %q: credentials and fragments are not allowed", Redact(raw))
	}
	return u, nil
}

// Redact strips user info and the query string so a URL can be logged.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "unparseable-url"
	}
	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	return u.String()
}
