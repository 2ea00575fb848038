// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldContentID = "content_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Engagement fields
	FieldOldState    = "old_state"
	FieldNewState    = "new_state"
	FieldTimeOnPage  = "time_on_page"
	FieldScrollDepth = "scroll_depth"
	FieldTransport   = "transport"
	FieldReason      = "reason"

	// Access fields
	FieldTier        = "tier"
	FieldEntitlement = "entitlement"
	FieldPreview     = "preview_count"
	FieldHidden      = "hidden_count"

	// Path / URL fields
	FieldPath     = "path"
	FieldEndpoint = "endpoint"
)
