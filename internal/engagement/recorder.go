// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engagement

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/readerpulse/internal/fsm"
	xglog "github.com/ManuGH/readerpulse/internal/log"
)

// State is the lifecycle state of a Recorder.
type State string

const (
	StateInert        State = "inert"
	StateActive       State = "active"
	StateBackgrounded State = "backgrounded"
	StateClosed       State = "closed"
)

type signal string

const (
	signalHidden  signal = "hidden"
	signalVisible signal = "visible"
	signalClose   signal = "close"
)

// MinVisibleSeconds is the engagement below which no record is emitted.
const MinVisibleSeconds = 1.0

var lifecycle = fsm.MustTable([]fsm.Transition[State, signal]{
	{From: StateActive, Event: signalHidden, To: StateBackgrounded},
	{From: StateBackgrounded, Event: signalVisible, To: StateActive},
	{From: StateActive, Event: signalClose, To: StateClosed},
	{From: StateBackgrounded, Event: signalClose, To: StateClosed},
})

// Options configures one page visit.
type Options struct {
	ContentID string
	Path      string
	// Disabled mounts an inert recorder that never subscribes or flushes.
	Disabled bool
	Logger   *zerolog.Logger
}

// Recorder owns one page visit. It folds visible time on every exit path and
// flushes at most once per hidden or unload boundary; becoming visible again
// re-arms it so a returning visitor contributes a new record.
type Recorder struct {
	mu sync.Mutex

	host    Host
	sink    Sink
	opts    Options
	logger  zerolog.Logger
	machine *fsm.Machine[State, signal]

	clock   *VisibilityClock
	scroll  *ScrollDepthTracker
	flushed bool
	inert   bool

	unsubscribe []func()
}

// Mount starts measuring a visit. When opts.Disabled is set, sink is nil, or
// the host lacks visibility or scroll signals, the returned Recorder is inert.
func Mount(host Host, sink Sink, opts Options) *Recorder {
	logger := xglog.WithComponent("engagement")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str(xglog.FieldContentID, opts.ContentID).Logger()

	r := &Recorder{host: host, sink: sink, opts: opts, logger: logger}

	if opts.Disabled || sink == nil || !host.supported() {
		r.inert = true
		r.logger.Debug().
			Str(xglog.FieldEvent, "recorder.inert").
			Bool("disabled", opts.Disabled).
			Bool("has_sink", sink != nil).
			Bool("supported", host.supported()).
			Msg("engagement recorder mounted inert")
		return r
	}

	visible := host.Visibility.Visible()
	initial := StateBackgrounded
	if visible {
		initial = StateActive
	}
	r.machine = lifecycle.Start(initial)
	r.clock = NewVisibilityClock(host.now(), visible)
	r.scroll = NewScrollDepthTracker(host.Frames)

	r.mu.Lock()
	r.observeLocked(host.Scroll.ScrollPosition())
	r.mu.Unlock()

	r.unsubscribe = append(r.unsubscribe,
		host.Visibility.SubscribeVisibility(r.HandleVisibility),
		host.Scroll.SubscribeScroll(r.HandleScroll),
	)
	if host.Unload != nil {
		r.unsubscribe = append(r.unsubscribe, host.Unload.SubscribeUnload(r.Close))
	}

	r.logger.Debug().
		Str(xglog.FieldEvent, "recorder.mounted").
		Str(xglog.FieldNewState, string(initial)).
		Str(xglog.FieldPath, opts.Path).
		Msg("engagement recorder mounted")
	return r
}

// HandleVisibility applies a visibility-change signal. Repeated signals for
// the state the recorder is already in are ignored.
func (r *Recorder) HandleVisibility(visible bool) {
	if r.inert {
		return
	}
	sig := signalHidden
	if visible {
		sig = signalVisible
	}

	r.mu.Lock()
	from := r.machine.State()
	to, err := r.machine.Fire(sig)
	if err != nil {
		r.mu.Unlock()
		r.logger.Debug().
			Str(xglog.FieldEvent, "recorder.signal_ignored").
			Str(xglog.FieldOldState, string(from)).
			Str("signal", string(sig)).
			Msg("visibility signal ignored")
		return
	}

	now := r.host.now()
	var rec *Record
	if visible {
		r.clock.MarkVisible(now)
		r.flushed = false
	} else {
		r.clock.MarkHidden(now)
		rec = r.flushLocked(now)
	}
	r.mu.Unlock()

	r.logger.Debug().
		Str(xglog.FieldEvent, "recorder.transition").
		Str(xglog.FieldOldState, string(from)).
		Str(xglog.FieldNewState, string(to)).
		Msg("engagement state changed")
	r.deliver(rec)
}

// HandleScroll records a raw scroll sample.
func (r *Recorder) HandleScroll(pos ScrollPosition) {
	if r.inert {
		return
	}
	r.mu.Lock()
	if !r.machine.Done() {
		r.observeLocked(pos)
	}
	r.mu.Unlock()
}

func (r *Recorder) observeLocked(pos ScrollPosition) {
	if r.scroll.Observe(pos) {
		r.host.Frames.RequestFrame(r.onFrame)
	}
}

func (r *Recorder) onFrame() {
	r.mu.Lock()
	r.scroll.FrameDone()
	r.mu.Unlock()
}

// TryFlush folds visible time and attempts a flush. It reports whether a
// record was handed to the sink. It is safe to call from any exit path; after
// Close it does nothing.
func (r *Recorder) TryFlush() bool {
	if r.inert {
		return false
	}
	r.mu.Lock()
	if r.machine.Done() {
		r.mu.Unlock()
		return false
	}
	now := r.host.now()
	r.clock.Fold(now)
	rec := r.flushLocked(now)
	r.mu.Unlock()

	r.deliver(rec)
	return rec != nil
}

// Close ends the visit: it stops the clock, attempts a flush and releases
// every subscription. No time accrues afterwards and subsequent calls are
// no-ops.
func (r *Recorder) Close() {
	if r.inert {
		return
	}
	r.mu.Lock()
	from := r.machine.State()
	if _, err := r.machine.Fire(signalClose); err != nil {
		r.mu.Unlock()
		return
	}
	now := r.host.now()
	r.clock.MarkHidden(now)
	rec := r.flushLocked(now)
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	r.deliver(rec)
	for _, fn := range unsubscribe {
		if fn != nil {
			fn()
		}
	}
	r.logger.Debug().
		Str(xglog.FieldEvent, "recorder.closed").
		Str(xglog.FieldOldState, string(from)).
		Msg("engagement recorder closed")
}

// flushLocked returns the record to deliver, or nil when the flush is gated.
func (r *Recorder) flushLocked(now time.Time) *Record {
	if r.opts.ContentID == "" || r.flushed {
		return nil
	}
	seconds := r.clock.Seconds()
	if seconds < MinVisibleSeconds {
		return nil
	}
	r.scroll.Flush()

	rec := Record{
		ContentID:          r.opts.ContentID,
		Path:               r.opts.Path,
		TimeOnPageSeconds:  int(math.Round(seconds)),
		ScrollDepthPercent: int(math.Round(r.scroll.Max())),
		At:                 now,
	}
	r.flushed = true
	return &rec
}

func (r *Recorder) deliver(rec *Record) {
	if rec == nil {
		return
	}
	r.logger.Debug().
		Str(xglog.FieldEvent, "record.flushed").
		Int(xglog.FieldTimeOnPage, rec.TimeOnPageSeconds).
		Int(xglog.FieldScrollDepth, rec.ScrollDepthPercent).
		Msg("engagement record flushed")
	r.sink.Deliver(*rec)
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	if r.inert {
		return StateInert
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.State()
}

// VisibleSeconds returns the visible time accumulated as of the last fold.
func (r *Recorder) VisibleSeconds() float64 {
	if r.inert {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Seconds()
}

// MaxScroll returns the maximum scroll fraction measured so far.
func (r *Recorder) MaxScroll() float64 {
	if r.inert {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scroll.Max()
}
