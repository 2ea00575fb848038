// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import (
	"time"
)

// fakeClock provides deterministic time control for testing.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeHost records subscriptions and lets tests emit synthetic signals.
type fakeHost struct {
	clock   *fakeClock
	visible bool
	pos     ScrollPosition

	visibilitySubs map[int]func(bool)
	scrollSubs     map[int]func(ScrollPosition)
	unloadSubs     map[int]func()
	nextID         int

	frames []func()
}

func newFakeHost(visible bool) *fakeHost {
	return &fakeHost{
		clock:          newFakeClock(),
		visible:        visible,
		pos:            ScrollPosition{Top: 0, ScrollHeight: 2000, ViewportHeight: 1000},
		visibilitySubs: map[int]func(bool){},
		scrollSubs:     map[int]func(ScrollPosition){},
		unloadSubs:     map[int]func(){},
	}
}

func (h *fakeHost) Host(withFrames bool) Host {
	host := Host{Clock: h.clock, Visibility: h, Scroll: h, Unload: h}
	if withFrames {
		host.Frames = h
	}
	return host
}

func (h *fakeHost) Visible() bool { return h.visible }

func (h *fakeHost) SubscribeVisibility(fn func(bool)) func() {
	id := h.nextID
	h.nextID++
	h.visibilitySubs[id] = fn
	return func() { delete(h.visibilitySubs, id) }
}

func (h *fakeHost) ScrollPosition() ScrollPosition { return h.pos }

func (h *fakeHost) SubscribeScroll(fn func(ScrollPosition)) func() {
	id := h.nextID
	h.nextID++
	h.scrollSubs[id] = fn
	return func() { delete(h.scrollSubs, id) }
}

func (h *fakeHost) SubscribeUnload(fn func()) func() {
	id := h.nextID
	h.nextID++
	h.unloadSubs[id] = fn
	return func() { delete(h.unloadSubs, id) }
}

func (h *fakeHost) RequestFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

func (h *fakeHost) setVisible(v bool) {
	h.visible = v
	for _, fn := range h.visibilitySubs {
		fn(v)
	}
}

func (h *fakeHost) scrollTo(top float64) {
	h.pos.Top = top
	for _, fn := range h.scrollSubs {
		fn(h.pos)
	}
}

func (h *fakeHost) unload() {
	for _, fn := range h.unloadSubs {
		fn()
	}
}

func (h *fakeHost) runFrames() {
	frames := h.frames
	h.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func (h *fakeHost) subscriptions() int {
	return len(h.visibilitySubs) + len(h.scrollSubs) + len(h.unloadSubs)
}

// captureSink collects delivered records.
type captureSink struct {
	records []Record
}

func (s *captureSink) Deliver(r Record) { s.records = append(s.records, r) }
