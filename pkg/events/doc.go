// Package events defines typed host events and per-type listener helpers.
//
// Every type here implements listener.StaticEvent on its zero value, so it can
// be used directly with listener.On:
//
//	h := listener.On(host, input, listener.Options{Passive: true}, func(e events.Input) {
//	    name.Set(e.Value())
//	})
//
// The OnX helpers are shorthands with default options:
//
//	h := events.OnClick(host, btn, func(events.Click) { count++ })
package events
