// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import "math"

// Fraction converts a scroll sample into a percentage in [0,100].
// A document no taller than the viewport has been seen entirely.
func Fraction(pos ScrollPosition) float64 {
	scrollable := pos.ScrollHeight - pos.ViewportHeight
	if scrollable <= 0 || math.IsNaN(scrollable) {
		return 100
	}
	f := 100 * pos.Top / scrollable
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 100:
		return 100
	}
	return f
}

// ScrollDepthTracker keeps the maximum scroll fraction seen. Samples are
// coalesced to one measurement per frame when a FrameScheduler is present;
// the newest sample is always the one measured.
type ScrollDepthTracker struct {
	frames    FrameScheduler
	max       float64
	pending   ScrollPosition
	hasSample bool
	scheduled bool
}

// NewScrollDepthTracker returns a tracker. frames may be nil.
func NewScrollDepthTracker(frames FrameScheduler) *ScrollDepthTracker {
	return &ScrollDepthTracker{frames: frames}
}

// Observe records a raw sample. It reports whether the caller must request a
// frame to measure it; when it returns true the caller schedules exactly one
// call to FrameDone. No further frame is requested until that call.
func (t *ScrollDepthTracker) Observe(pos ScrollPosition) (needsFrame bool) {
	t.pending = pos
	t.hasSample = true
	if t.frames == nil {
		t.Flush()
		return false
	}
	if t.scheduled {
		return false
	}
	t.scheduled = true
	return true
}

// FrameDone is the frame callback requested by Observe. It measures the
// pending sample and allows the next frame request.
func (t *ScrollDepthTracker) FrameDone() {
	t.scheduled = false
	t.Flush()
}

// Flush measures the pending sample, if any. An outstanding frame stays
// outstanding.
func (t *ScrollDepthTracker) Flush() {
	if !t.hasSample {
		return
	}
	t.hasSample = false
	if f := Fraction(t.pending); f > t.max {
		t.max = f
	}
}

// Max returns the maximum fraction measured so far.
func (t *ScrollDepthTracker) Max() float64 { return t.max }
