// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountTest(t *testing.T, h *fakeHost, withFrames bool, opts Options) (*Recorder, *captureSink) {
	t.Helper()
	nop := zerolog.Nop()
	if opts.Logger == nil {
		opts.Logger = &nop
	}
	sink := &captureSink{}
	return Mount(h.Host(withFrames), sink, opts), sink
}

func TestRecorderHideFlushesOneRecord(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1", Path: "/posts/post-1"})
	require.Equal(t, StateActive, r.State())

	h.clock.Advance(12400 * time.Millisecond)
	h.scrollTo(500)
	h.setVisible(false)

	require.Len(t, sink.records, 1)
	want := Record{
		ContentID:          "post-1",
		Path:               "/posts/post-1",
		TimeOnPageSeconds:  12,
		ScrollDepthPercent: 50,
		At:                 h.clock.Now(),
	}
	if diff := cmp.Diff(want, sink.records[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StateBackgrounded, r.State())
}

func TestRecorderHideThenUnloadRaceEmitsOnce(t *testing.T) {
	h := newFakeHost(true)
	_, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(5 * time.Second)
	h.setVisible(false)
	h.unload()

	assert.Len(t, sink.records, 1)
}

func TestRecorderTryFlushTwiceEmitsOnce(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(3 * time.Second)
	assert.True(t, r.TryFlush())
	assert.False(t, r.TryFlush())

	assert.Len(t, sink.records, 1)
}

func TestRecorderRearmsOnReturn(t *testing.T) {
	h := newFakeHost(true)
	_, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(4 * time.Second)
	h.setVisible(false)

	h.clock.Advance(time.Minute)
	h.setVisible(true)
	h.clock.Advance(6 * time.Second)
	h.setVisible(false)

	require.Len(t, sink.records, 2)
	assert.Equal(t, 4, sink.records[0].TimeOnPageSeconds)
	assert.Equal(t, 10, sink.records[1].TimeOnPageSeconds, "second record carries the cumulative visible time")
}

func TestRecorderSuppressesSubSecondVisits(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(400 * time.Millisecond)
	h.setVisible(false)
	h.unload()

	assert.Empty(t, sink.records)
	assert.InDelta(t, 0.4, r.VisibleSeconds(), 1e-9)
}

func TestRecorderSubSecondHideDoesNotArm(t *testing.T) {
	h := newFakeHost(true)
	_, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(600 * time.Millisecond)
	h.setVisible(false)
	h.setVisible(true)
	h.clock.Advance(600 * time.Millisecond)
	h.unload()

	require.Len(t, sink.records, 1, "sub-second intervals add up across visible periods")
	assert.Equal(t, 1, sink.records[0].TimeOnPageSeconds)
}

func TestRecorderWithoutContentIDNeverFlushes(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{Path: "/about"})

	h.clock.Advance(30 * time.Second)
	h.setVisible(false)
	r.Close()

	assert.Empty(t, sink.records)
}

func TestRecorderDisabledIsInert(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1", Disabled: true})

	assert.Equal(t, StateInert, r.State())
	assert.Zero(t, h.subscriptions(), "inert recorder must not subscribe")

	h.clock.Advance(30 * time.Second)
	r.HandleVisibility(false)
	assert.False(t, r.TryFlush())
	r.Close()
	assert.Empty(t, sink.records)
}

func TestRecorderUnsupportedHostIsInert(t *testing.T) {
	h := newFakeHost(true)
	host := h.Host(false)
	host.Scroll = nil
	sink := &captureSink{}
	nop := zerolog.Nop()

	r := Mount(host, sink, Options{ContentID: "post-1", Logger: &nop})

	assert.Equal(t, StateInert, r.State())
	h.clock.Advance(30 * time.Second)
	h.setVisible(false)
	assert.Empty(t, sink.records)
}

func TestRecorderNilSinkIsInert(t *testing.T) {
	h := newFakeHost(true)
	nop := zerolog.Nop()
	r := Mount(h.Host(false), nil, Options{ContentID: "post-1", Logger: &nop})

	assert.Equal(t, StateInert, r.State())
	assert.False(t, r.TryFlush())
}

func TestRecorderStartingHiddenAccruesNothingUntilVisible(t *testing.T) {
	h := newFakeHost(false)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})
	require.Equal(t, StateBackgrounded, r.State())

	h.clock.Advance(time.Hour)
	h.setVisible(true)
	h.clock.Advance(2 * time.Second)
	h.unload()

	require.Len(t, sink.records, 1)
	assert.Equal(t, 2, sink.records[0].TimeOnPageSeconds)
}

func TestRecorderIgnoresDuplicateSignals(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(2 * time.Second)
	r.HandleVisibility(true)
	h.clock.Advance(2 * time.Second)
	h.setVisible(false)
	h.clock.Advance(10 * time.Second)
	r.HandleVisibility(false)

	require.Len(t, sink.records, 1)
	assert.Equal(t, 4, sink.records[0].TimeOnPageSeconds)
	assert.InDelta(t, 4, r.VisibleSeconds(), 1e-9)
}

func TestRecorderCloseReleasesSubscriptions(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})
	require.Equal(t, 3, h.subscriptions())

	h.clock.Advance(3 * time.Second)
	r.Close()
	r.Close()

	assert.Equal(t, StateClosed, r.State())
	assert.Zero(t, h.subscriptions())
	assert.Len(t, sink.records, 1)

	// Signals after close are ignored.
	r.HandleVisibility(true)
	r.HandleVisibility(false)
	assert.Len(t, sink.records, 1)
}

func TestRecorderCloseEndsSession(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(400 * time.Millisecond)
	r.Close()
	require.Empty(t, sink.records, "sub-second visit is suppressed")
	require.Equal(t, StateClosed, r.State())

	h.clock.Advance(30 * time.Second)
	assert.False(t, r.TryFlush())
	assert.Empty(t, sink.records)
	assert.InDelta(t, 0.4, r.VisibleSeconds(), 1e-9, "no time accrues after close")
}

func TestRecorderTryFlushAfterCloseDoesNotResend(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(5 * time.Second)
	r.Close()
	h.clock.Advance(time.Minute)

	assert.False(t, r.TryFlush())
	require.Len(t, sink.records, 1)
	assert.Equal(t, 5, sink.records[0].TimeOnPageSeconds)
}

func TestRecorderShortDocumentReportsFullDepth(t *testing.T) {
	h := newFakeHost(true)
	h.pos = ScrollPosition{ScrollHeight: 600, ViewportHeight: 900}
	_, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.clock.Advance(2 * time.Second)
	h.unload()

	require.Len(t, sink.records, 1)
	assert.Equal(t, 100, sink.records[0].ScrollDepthPercent)
}

func TestRecorderFlushReflectsLastScrollBeforeFrame(t *testing.T) {
	h := newFakeHost(true)
	r, sink := mountTest(t, h, true, Options{ContentID: "post-1"})
	h.runFrames()

	h.scrollTo(200)
	h.scrollTo(700)
	h.scrollTo(900)
	assert.Len(t, h.frames, 1, "rapid scrolling requests a single frame")
	assert.Zero(t, r.MaxScroll())

	h.clock.Advance(2 * time.Second)
	h.setVisible(false)

	require.Len(t, sink.records, 1)
	assert.Equal(t, 90, sink.records[0].ScrollDepthPercent)

	h.scrollTo(950)
	assert.Len(t, h.frames, 1, "the outstanding frame is reused")

	// The stale frame measures the newest sample.
	h.runFrames()
	assert.InDelta(t, 95, r.MaxScroll(), 1e-9)
}

func TestRecorderScrollDepthNeverDecreases(t *testing.T) {
	h := newFakeHost(true)
	_, sink := mountTest(t, h, false, Options{ContentID: "post-1"})

	h.scrollTo(800)
	h.scrollTo(100)
	h.clock.Advance(2 * time.Second)
	h.setVisible(false)

	require.Len(t, sink.records, 1)
	assert.Equal(t, 80, sink.records[0].ScrollDepthPercent)
}

func TestRecordPayloadShape(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	p := Record{ContentID: "c1", Path: "/c1", TimeOnPageSeconds: 9, ScrollDepthPercent: 42, At: at}.Payload()

	assert.Equal(t, Payload{
		EventType:   EventTypePageView,
		TS:          "2026-03-04T04:06:07Z",
		Path:        "/c1",
		ContentID:   "c1",
		TimeOnPage:  9,
		ScrollDepth: 42,
	}, p)
}
