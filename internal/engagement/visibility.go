// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import "time"

// VisibilityClock accumulates wall-clock time spent visible.
// Time only accrues between a visible anchor and the next fold.
type VisibilityClock struct {
	visible bool
	anchor  time.Time
	total   time.Duration
}

// NewVisibilityClock starts a clock at now in the given visibility state.
func NewVisibilityClock(now time.Time, visible bool) *VisibilityClock {
	return &VisibilityClock{visible: visible, anchor: now}
}

// Fold adds the time since the last transition when visible, without
// changing state. Calling it twice at the same instant adds nothing the
// second time. An instant earlier than the anchor accrues nothing.
func (c *VisibilityClock) Fold(now time.Time) {
	if !c.visible {
		return
	}
	if now.After(c.anchor) {
		c.total += now.Sub(c.anchor)
		c.anchor = now
	}
}

// MarkHidden folds the current interval and pauses the clock.
func (c *VisibilityClock) MarkHidden(now time.Time) {
	c.Fold(now)
	c.visible = false
}

// MarkVisible resumes the clock from now. Hidden time never accrues.
func (c *VisibilityClock) MarkVisible(now time.Time) {
	if c.visible {
		c.Fold(now)
		return
	}
	c.visible = true
	c.anchor = now
}

// Visible reports the current state.
func (c *VisibilityClock) Visible() bool { return c.visible }

// Total returns the accumulated visible duration as of the last fold.
func (c *VisibilityClock) Total() time.Duration { return c.total }

// Seconds returns Total in seconds.
func (c *VisibilityClock) Seconds() float64 { return c.total.Seconds() }
