// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

//go:build js && wasm

// Command readerpulse-wasm measures one page visit in the browser and hands
// the engagement record to the collection endpoint.
//
// Build with GOOS=js GOARCH=wasm and configure through window.readerpulse:
//
//	window.readerpulse = {contentId: "post-1", path: "/posts/post-1", endpoint: "/api/v1/events"};
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/ManuGH/readerpulse/internal/delivery"
	"github.com/ManuGH/readerpulse/internal/engagement"
	"github.com/ManuGH/readerpulse/internal/engagement/jshost"
	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/version"
)

func main() {
	xglog.Configure(xglog.Config{Level: "warn", Output: os.Stderr, Service: "readerpulse-wasm", Version: version.Version})
	logger := xglog.WithComponent("wasm")

	doc := jshost.Global()
	settings := doc.ReadSettings()

	var beacon delivery.Beacon
	if b := doc.NewBeacon(settings.Endpoint); b != nil {
		beacon = b
	}
	var keepalive delivery.Keepalive
	if k := doc.NewKeepalive(settings.Endpoint); k != nil {
		keepalive = k
	}
	channel := delivery.NewChannel(beacon, keepalive, delivery.WithLogger(logger))

	recLogger := logger.Level(zerolog.WarnLevel)
	rec := engagement.Mount(doc.Host(), channel, engagement.Options{
		ContentID: settings.ContentID,
		Path:      settings.Path,
		Disabled:  settings.Disabled,
		Logger:    &recLogger,
	})
	if rec.State() == engagement.StateInert {
		return
	}

	// Callbacks run on the JS event loop; main must stay alive for them.
	select {}
}
