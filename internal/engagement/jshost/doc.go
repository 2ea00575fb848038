// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package jshost binds an engagement.Host and the delivery transports to a
// browser document when compiled with GOOS=js GOARCH=wasm.
package jshost
