// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package ingest accepts engagement records posted by readers and hands
// valid ones to a downstream Sink. It neither aggregates nor stores.
package ingest
