// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import "time"

// Clock provides the current time. It must be monotonic within one page view.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using time.Now().
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ScrollPosition is a raw scroll sample in CSS pixels.
type ScrollPosition struct {
	Top            float64
	ScrollHeight   float64
	ViewportHeight float64
}

// VisibilitySource reports page visibility and its changes.
type VisibilitySource interface {
	Visible() bool
	SubscribeVisibility(fn func(visible bool)) (unsubscribe func())
}

// ScrollSource reports the document scroll position and its changes.
type ScrollSource interface {
	ScrollPosition() ScrollPosition
	SubscribeScroll(fn func(ScrollPosition)) (unsubscribe func())
}

// UnloadSource signals that the page is being torn down.
type UnloadSource interface {
	SubscribeUnload(fn func()) (unsubscribe func())
}

// FrameScheduler runs fn once before the next rendered frame.
// Implementations must not call fn synchronously from RequestFrame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Host bundles the platform capabilities a Recorder consumes. Each field is
// resolved once at startup; nil means the capability is absent.
//
// Visibility and Scroll are required, otherwise the Recorder is inert.
// Unload and Frames are optional: without Unload the session ends only on
// Close, without Frames every scroll sample is measured immediately.
type Host struct {
	Clock      Clock
	Visibility VisibilitySource
	Scroll     ScrollSource
	Unload     UnloadSource
	Frames     FrameScheduler
}

func (h Host) supported() bool {
	return h.Visibility != nil && h.Scroll != nil
}

func (h Host) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}
