// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFraction(t *testing.T) {
	tests := []struct {
		name string
		pos  ScrollPosition
		want float64
	}{
		{"top of page", ScrollPosition{Top: 0, ScrollHeight: 3000, ViewportHeight: 1000}, 0},
		{"half way", ScrollPosition{Top: 1000, ScrollHeight: 3000, ViewportHeight: 1000}, 50},
		{"bottom", ScrollPosition{Top: 2000, ScrollHeight: 3000, ViewportHeight: 1000}, 100},
		{"overscroll clamps", ScrollPosition{Top: 2500, ScrollHeight: 3000, ViewportHeight: 1000}, 100},
		{"negative clamps", ScrollPosition{Top: -40, ScrollHeight: 3000, ViewportHeight: 1000}, 0},
		{"short document", ScrollPosition{Top: 0, ScrollHeight: 800, ViewportHeight: 1000}, 100},
		{"exact fit", ScrollPosition{Top: 0, ScrollHeight: 1000, ViewportHeight: 1000}, 100},
		{"nan top", ScrollPosition{Top: math.NaN(), ScrollHeight: 3000, ViewportHeight: 1000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Fraction(tt.pos), 1e-9)
		})
	}
}

func TestScrollDepthTrackerIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewScrollDepthTracker(nil)

	prev := 0.0
	for i := 0; i < 500; i++ {
		tr.Observe(ScrollPosition{
			Top:            rng.Float64() * 4000,
			ScrollHeight:   3000,
			ViewportHeight: 1000,
		})
		assert.GreaterOrEqual(t, tr.Max(), prev)
		prev = tr.Max()
	}
}

type queuedFrames struct{ queue []func() }

func (q *queuedFrames) RequestFrame(fn func()) { q.queue = append(q.queue, fn) }

func TestScrollDepthTrackerCoalescesPerFrame(t *testing.T) {
	tr := NewScrollDepthTracker(&queuedFrames{})

	assert.True(t, tr.Observe(ScrollPosition{Top: 100, ScrollHeight: 2000, ViewportHeight: 1000}))
	assert.False(t, tr.Observe(ScrollPosition{Top: 300, ScrollHeight: 2000, ViewportHeight: 1000}))
	assert.False(t, tr.Observe(ScrollPosition{Top: 600, ScrollHeight: 2000, ViewportHeight: 1000}))
	assert.Zero(t, tr.Max(), "nothing is measured before the frame")

	tr.FrameDone()
	assert.InDelta(t, 60, tr.Max(), 1e-9, "the newest sample wins")

	assert.True(t, tr.Observe(ScrollPosition{Top: 900, ScrollHeight: 2000, ViewportHeight: 1000}),
		"a new frame is requested after the previous one ran")
}

func TestScrollDepthTrackerFlushWithoutFrameKeepsFinalValue(t *testing.T) {
	tr := NewScrollDepthTracker(&queuedFrames{})

	tr.Observe(ScrollPosition{Top: 1000, ScrollHeight: 2000, ViewportHeight: 1000})
	// The frame never ran; a flush still measures the pending sample.
	tr.Flush()
	assert.InDelta(t, 100, tr.Max(), 1e-9)
}

func TestScrollDepthTrackerEarlyFlushKeepsFrameOutstanding(t *testing.T) {
	frames := &queuedFrames{}
	tr := NewScrollDepthTracker(frames)

	assert.True(t, tr.Observe(ScrollPosition{Top: 200, ScrollHeight: 2000, ViewportHeight: 1000}))
	tr.Flush()
	assert.InDelta(t, 20, tr.Max(), 1e-9)

	assert.False(t, tr.Observe(ScrollPosition{Top: 500, ScrollHeight: 2000, ViewportHeight: 1000}),
		"the frame requested before the flush has not run yet")
	assert.InDelta(t, 20, tr.Max(), 1e-9)

	tr.FrameDone()
	assert.InDelta(t, 50, tr.Max(), 1e-9, "the outstanding frame measures the later sample")
	assert.True(t, tr.Observe(ScrollPosition{Top: 600, ScrollHeight: 2000, ViewportHeight: 1000}))
}
