// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package content stores tiered articles and serves them truncated to what
// the requesting reader is entitled to see.
//
// Truncation happens in Service.Serve, before a payload leaves the server.
// Withheld blocks are never encoded into a response.
package content
