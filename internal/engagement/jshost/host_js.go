// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

//go:build js && wasm

package jshost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/ManuGH/readerpulse/internal/engagement"
)

var (
	// ErrFetchUnavailable is returned when the document has no fetch function.
	ErrFetchUnavailable = errors.New("fetch unavailable")
	// ErrTransportThrew wraps an exception thrown by sendBeacon or fetch.
	ErrTransportThrew = errors.New("transport threw")
)

// Document wraps the global window and document objects.
type Document struct {
	window js.Value
	doc    js.Value
}

// Global returns the Document of the running page.
func Global() *Document {
	w := js.Global()
	return &Document{window: w, doc: w.Get("document")}
}

func defined(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// Host resolves each capability once. Missing APIs leave the field nil.
func (d *Document) Host() engagement.Host {
	h := engagement.Host{Clock: engagement.RealClock{}}
	if !defined(d.doc) {
		return h
	}
	if defined(d.doc.Get("visibilityState")) {
		h.Visibility = visibility{d}
	}
	if defined(d.doc.Get("documentElement")) {
		h.Scroll = scroll{d}
	}
	h.Unload = unload{d}
	if d.window.Get("requestAnimationFrame").Type() == js.TypeFunction {
		h.Frames = frames{d}
	}
	return h
}

// listen registers fn for event on target and returns an idempotent remover.
func listen(target js.Value, event string, fn func(js.Value)) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	target.Call("addEventListener", event, cb)
	var once sync.Once
	return func() {
		once.Do(func() {
			target.Call("removeEventListener", event, cb)
			cb.Release()
		})
	}
}

type visibility struct{ d *Document }

func (v visibility) Visible() bool {
	return v.d.doc.Get("visibilityState").String() == "visible"
}

func (v visibility) SubscribeVisibility(fn func(bool)) func() {
	return listen(v.d.doc, "visibilitychange", func(js.Value) { fn(v.Visible()) })
}

type scroll struct{ d *Document }

func (s scroll) ScrollPosition() engagement.ScrollPosition {
	el := s.d.doc.Get("documentElement")
	top := s.d.window.Get("scrollY")
	if !defined(top) {
		top = el.Get("scrollTop")
	}
	return engagement.ScrollPosition{
		Top:            top.Float(),
		ScrollHeight:   el.Get("scrollHeight").Float(),
		ViewportHeight: s.d.window.Get("innerHeight").Float(),
	}
}

func (s scroll) SubscribeScroll(fn func(engagement.ScrollPosition)) func() {
	return listen(s.d.window, "scroll", func(js.Value) { fn(s.ScrollPosition()) })
}

type unload struct{ d *Document }

// SubscribeUnload prefers pagehide and falls back to beforeunload.
func (u unload) SubscribeUnload(fn func()) func() {
	event := "beforeunload"
	if !u.d.window.Get("onpagehide").IsUndefined() {
		event = "pagehide"
	}
	return listen(u.d.window, event, func(js.Value) { fn() })
}

type frames struct{ d *Document }

func (f frames) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	f.d.window.Call("requestAnimationFrame", cb)
}

// Beacon sends payloads with navigator.sendBeacon.
type Beacon struct {
	d        *Document
	endpoint string
}

// NewBeacon returns nil when the browser has no sendBeacon.
func (d *Document) NewBeacon(endpoint string) *Beacon {
	nav := d.window.Get("navigator")
	if !defined(nav) || nav.Get("sendBeacon").Type() != js.TypeFunction {
		return nil
	}
	return &Beacon{d: d, endpoint: endpoint}
}

// SendBeacon reports false when the browser refuses the payload or throws.
func (b *Beacon) SendBeacon(body []byte) bool {
	var accepted bool
	err := guard(func() {
		blob := b.d.blob(body)
		accepted = b.d.window.Get("navigator").Call("sendBeacon", b.endpoint, blob).Truthy()
	})
	return err == nil && accepted
}

// Keepalive posts payloads with fetch(..., {keepalive: true}).
type Keepalive struct {
	d        *Document
	endpoint string
}

// NewKeepalive returns nil when the browser has no fetch.
func (d *Document) NewKeepalive(endpoint string) *Keepalive {
	if d.window.Get("fetch").Type() != js.TypeFunction {
		return nil
	}
	return &Keepalive{d: d, endpoint: endpoint}
}

// PostKeepalive starts the request and returns without awaiting it. Rejections
// are swallowed; a synchronous throw is returned as an error.
func (k *Keepalive) PostKeepalive(_ context.Context, body []byte) error {
	fetch := k.d.window.Get("fetch")
	if fetch.Type() != js.TypeFunction {
		return ErrFetchUnavailable
	}
	return guard(func() { k.start(fetch, body) })
}

func (k *Keepalive) start(fetch js.Value, body []byte) {
	headers := js.Global().Get("Object").New()
	headers.Set("Content-Type", "application/json")
	init := js.Global().Get("Object").New()
	init.Set("method", "POST")
	init.Set("keepalive", true)
	init.Set("headers", headers)
	init.Set("body", string(body))

	promise := fetch.Invoke(k.endpoint, init)

	var swallow js.Func
	swallow = js.FuncOf(func(js.Value, []js.Value) any {
		swallow.Release()
		return nil
	})
	promise.Call("catch", swallow)
}

// guard runs fn and converts a thrown JavaScript exception, which syscall/js
// raises as a panic, into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("%w: %s", ErrTransportThrew, jsErr.Error())
				return
			}
			err = fmt.Errorf("%w: %v", ErrTransportThrew, r)
		}
	}()
	fn()
	return nil
}

func (d *Document) blob(body []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(body))
	js.CopyBytesToJS(arr, body)
	opts := js.Global().Get("Object").New()
	opts.Set("type", "application/json")
	parts := js.Global().Get("Array").New(1)
	parts.SetIndex(0, arr)
	return js.Global().Get("Blob").New(parts, opts)
}

// Settings is the page-provided window.readerpulse object.
type Settings struct {
	ContentID string
	Path      string
	Endpoint  string
	Disabled  bool
}

// ReadSettings reads window.readerpulse. Missing fields fall back to the
// current location path and the /api/v1/events endpoint.
func (d *Document) ReadSettings() Settings {
	s := Settings{Endpoint: "/api/v1/events"}
	if loc := d.window.Get("location"); defined(loc) {
		s.Path = loc.Get("pathname").String()
	}
	cfg := d.window.Get("readerpulse")
	if !defined(cfg) {
		return s
	}
	if v := cfg.Get("contentId"); v.Type() == js.TypeString {
		s.ContentID = v.String()
	}
	if v := cfg.Get("path"); v.Type() == js.TypeString {
		s.Path = v.String()
	}
	if v := cfg.Get("endpoint"); v.Type() == js.TypeString && v.String() != "" {
		s.Endpoint = v.String()
	}
	s.Disabled = cfg.Get("disabled").Truthy()
	return s
}
