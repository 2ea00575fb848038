// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package access decides how much of a content item a visitor may receive.
//
// The policy is a pair of immutable lookup tables: which content tiers an
// entitlement level can fully view, and how many leading blocks a visitor
// without that entitlement may preview. Every function is pure. Unrecognised
// input resolves to the most restrictive outcome.
//
// Truncation must happen where the payload is built (see FilterBlocks), never
// by hiding blocks after they have reached the client.
package access
