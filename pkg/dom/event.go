package dom

import (
	"maps"

	"github.com/vango-dev/listen/pkg/listener"
)

// Phase is the dispatch phase an event is in.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "none"
	}
}

// Event is the generic event delivered by a Host. It implements listener.Event.
type Event struct {
	typ        string
	bubbles    bool
	cancelable bool
	fields     map[string]string

	target    *Node
	current   *Node
	phase     Phase
	prevented bool
	stopped   bool
	passive   bool
}

// NewEvent creates an event. Fields carry the payload (e.g. "key", "value").
func NewEvent(typ string, bubbles bool, fields map[string]string) *Event {
	return &Event{
		typ:        typ,
		bubbles:    bubbles,
		cancelable: true,
		fields:     fields,
	}
}

// Type implements listener.Event.
func (e *Event) Type() string { return e.typ }

// Target implements listener.Event.
func (e *Event) Target() listener.Target {
	if e.target == nil {
		return nil
	}
	return e.target
}

// CurrentTarget returns the node whose listener is running.
func (e *Event) CurrentTarget() *Node { return e.current }

// Phase returns the current dispatch phase.
func (e *Event) Phase() Phase { return e.phase }

// Bubbles reports whether the event has a bubble phase.
func (e *Event) Bubbles() bool { return e.bubbles }

// Field implements listener.Event.
func (e *Event) Field(name string) (string, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Fields returns a copy of the payload fields.
func (e *Event) Fields() map[string]string {
	return maps.Clone(e.fields)
}

// PreventDefault implements listener.Event. It has no effect inside a
// passive listener.
func (e *Event) PreventDefault() {
	if e.passive || !e.cancelable {
		return
	}
	e.prevented = true
}

// DefaultPrevented implements listener.Event.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// StopPropagation stops dispatch after the current node's listeners.
func (e *Event) StopPropagation() { e.stopped = true }
