// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package validate accumulates field-level configuration errors so a single
// load reports every problem at once.
package validate

import (
	"cmp"
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	platformnet "github.com/ManuGH/readerpulse/internal/platform/net"
)

// FieldError is one failed field.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Errors is returned by Validator.Err and lists every failed field in check
// order.
type Errors []FieldError

func (es Errors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failed field names.
func (es Errors) Fields() []string {
	names := make([]string, len(es))
	for i, e := range es {
		names[i] = e.Field
	}
	return names
}

// Validator collects failures.
type Validator struct {
	errs Errors
}

func New() *Validator { return &Validator{} }

// Fail records a failure for field.
func (v *Validator) Fail(field string, value any, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Check records msg against field unless ok.
func (v *Validator) Check(ok bool, field string, value any, msg string) {
	if !ok {
		v.Fail(field, value, "%s", msg)
	}
}

func (v *Validator) IsValid() bool { return len(v.errs) == 0 }

// Err returns nil or an Errors value.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return slices.Clone(v.errs)
}

// Endpoint checks an absolute http(s) URL without credentials.
func (v *Validator) Endpoint(field, value string) {
	if _, err := platformnet.ParseEndpoint(value); err != nil {
		v.Fail(field, platformnet.Redact(value), "%v", err)
	}
}

// ListenAddr checks a host:port listen address. The host may be empty.
func (v *Validator) ListenAddr(field, addr string) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		v.Fail(field, addr, "invalid listen address: %v", err)
		return
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		v.Fail(field, addr, "port must be between 0 and 65535")
	}
}

// Range checks lo <= value <= hi.
func Range[T cmp.Ordered](v *Validator, field string, value, lo, hi T) {
	if value < lo || value > hi {
		v.Fail(field, value, "must be between %v and %v, got %v", lo, hi, value)
	}
}

// Positive checks value > 0. It accepts durations as well as counts.
func Positive[T cmp.Ordered](v *Validator, field string, value T) {
	var zero T
	if value <= zero {
		v.Fail(field, value, "must be positive, got %v", value)
	}
}

// NotEmpty checks a non-blank string.
func (v *Validator) NotEmpty(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, value, "cannot be empty")
}

// OneOf checks membership in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	if !slices.Contains(allowed, value) {
		v.Fail(field, value, "must be one of %s", strings.Join(allowed, ", "))
	}
}

// LogLevel checks a level zerolog can parse. The empty string is rejected.
func (v *Validator) LogLevel(field, level string) {
	if level == "" {
		v.Fail(field, level, "cannot be empty")
		return
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		v.Fail(field, level, "unknown log level")
	}
}

// Path rejects relative paths that escape the working directory.
func (v *Validator) Path(field, path string) {
	if path == "" {
		return
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) && (clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))) {
		v.Fail(field, path, "path must not traverse outside the working directory")
	}
}
