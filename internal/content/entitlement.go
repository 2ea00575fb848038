// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"net/http"

	"github.com/ManuGH/readerpulse/internal/access"
)

// EntitlementResolver derives the reader's entitlement from a request.
type EntitlementResolver interface {
	Resolve(r *http.Request) access.Entitlement
}

// HeaderResolver trusts a header set by the upstream auth proxy. Missing or
// unrecognised values resolve to free.
type HeaderResolver struct {
	Header string
}

func (h HeaderResolver) Resolve(r *http.Request) access.Entitlement {
	return access.ParseEntitlement(r.Header.Get(h.Header))
}
