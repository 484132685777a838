package main

import (
	"log/slog"

	"github.com/vango-dev/listen/pkg/bridge"
	"github.com/vango-dev/listen/pkg/discard"
	"github.com/vango-dev/listen/pkg/events"
	"github.com/vango-dev/listen/pkg/listener"
)

// Host node ids the demo binds to.
const (
	nodeRoot    = "root"
	nodeCounter = "counter"
	nodePanel   = "panel"
	nodeName    = "name"
)

// Custom event types sent by the demo host.
const (
	eventReady = "ready"
	eventClose = "close"
)

type demo struct {
	logger *slog.Logger
	clicks int
}

// bindDemo attaches the demo listeners of one session.
//
// The panel's listeners form a group that is discarded when the host sends
// close on the root node. Everything else stays attached until the session
// ends, at which point the returned group is dropped.
func bindDemo(r listener.Registrar, logger *slog.Logger) discard.Discarder {
	d := &demo{logger: logger}

	panel := discard.NewGroup(
		events.OnInput(r, bridge.Target(nodeName), d.onInput),
		events.OnKeyDown(r, bridge.Target(nodePanel), d.onKeyDown),
		events.OnScroll(r, bridge.Target(nodePanel), d.onScroll),
		discard.NewFunc(func() { logger.Info("panel closed") }),
	)

	root := discard.NewGroup(
		events.OnClick(r, bridge.Target(nodeCounter), d.onClick),
		listener.Once(r, bridge.Target(nodeRoot), eventReady, func(listener.Event) {
			logger.Info("host ready")
		}),
		panel,
	)
	root.Add(listener.Once(r, bridge.Target(nodeRoot), eventClose, func(listener.Event) {
		panel.Discard()
	}))
	return root
}

func (d *demo) onClick(e events.Click) {
	d.clicks++
	d.logger.Info("counter clicked", "clicks", d.clicks, "button", e.Button())
}

func (d *demo) onInput(e events.Input) {
	d.logger.Debug("name changed", "value", e.Value())
}

func (d *demo) onKeyDown(e events.KeyDown) {
	d.logger.Debug("key down", "key", e.Key())
}

func (d *demo) onScroll(e events.Scroll) {
	d.logger.Debug("panel scrolled", "scrollTop", e.ScrollTop())
}
