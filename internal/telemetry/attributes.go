// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans.
const (
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"
	HTTPRequestIDKey  = "http.request_id"

	ContentIDKey         = "content.id"
	AccessTierKey        = "access.tier"
	AccessEntitlementKey = "access.entitlement"
	AccessFullKey        = "access.full"
	AccessHiddenKey      = "access.hidden_blocks"

	IngestAcceptedKey = "ingest.accepted"
	IngestRejectedKey = "ingest.rejected"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// AccessAttributes describes one content access decision.
func AccessAttributes(contentID, tier, entitlement string, full bool, hidden int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ContentIDKey, contentID),
		attribute.String(AccessTierKey, tier),
		attribute.String(AccessEntitlementKey, entitlement),
		attribute.Bool(AccessFullKey, full),
		attribute.Int(AccessHiddenKey, hidden),
	}
}

// IngestAttributes describes one ingest request.
func IngestAttributes(accepted, rejected int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(IngestAcceptedKey, accepted),
		attribute.Int(IngestRejectedKey, rejected),
	}
}
