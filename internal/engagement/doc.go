// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package engagement measures how long a page stays visible and how far the
// visitor scrolls, and emits at most one summary Record per visible period.
//
// The package never touches browser globals. Platform signals reach it
// through the capability interfaces in host.go, so the state machine runs
// identically under a WebAssembly host and under the fake host used in tests.
// A missing capability makes the Recorder inert instead of failing.
package engagement
