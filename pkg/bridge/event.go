package bridge

import "github.com/vango-dev/listen/pkg/listener"

// Target is a remote node identified by its id on the host.
type Target string

// TargetID implements listener.Target.
func (t Target) TargetID() string { return string(t) }

// remoteEvent is an event delivered by the remote host. It implements
// listener.Event.
//
// The host has already run its default action by the time the event reaches
// the server, so PreventDefault is recorded but has no effect on the host.
type remoteEvent struct {
	typ       string
	target    Target
	fields    map[string]string
	passive   bool
	prevented bool
}

func (e *remoteEvent) Type() string { return e.typ }

func (e *remoteEvent) Target() listener.Target { return e.target }

func (e *remoteEvent) Field(name string) (string, bool) {
	v, ok := e.fields[name]
	return v, ok
}

func (e *remoteEvent) PreventDefault() {
	if !e.passive {
		e.prevented = true
	}
}

func (e *remoteEvent) DefaultPrevented() bool { return e.prevented }
