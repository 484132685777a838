package listener

import (
	"github.com/vango-dev/listen/internal/errors"
)

// State is the lifecycle state of an EventListener.
type State uint8

const (
	// Attached: the handle holds a live registration token.
	Attached State = iota
	// Detached: Discard unregistered the callback. Terminal.
	Detached
	// Forgotten: Drop left the registration active on the target. Terminal.
	Forgotten
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	case Forgotten:
		return "forgotten"
	default:
		return "unknown"
	}
}

// EventListener owns one registration on a Registrar.
type EventListener struct {
	registrar Registrar
	token     Token
	name      string
	state     State
}

// New registers cb on target for name with opts and returns the handle.
func New(r Registrar, target Target, name string, opts Options, cb func(Event)) *EventListener {
	name = intern(name)
	return &EventListener{
		registrar: r,
		token:     r.Register(target, name, opts, cb),
		name:      name,
	}
}

// Once registers cb so the host delivers at most one event to it, after which
// the host clears the registration on its own.
func Once(r Registrar, target Target, name string, cb func(Event)) *EventListener {
	name = intern(name)
	return &EventListener{
		registrar: r,
		token:     r.RegisterOnce(target, name, cb),
		name:      name,
	}
}

// Name returns the interned event name.
func (l *EventListener) Name() string {
	return l.name
}

// Token returns the registration token, or zero once torn down.
func (l *EventListener) Token() Token {
	return l.token
}

// State returns the lifecycle state.
func (l *EventListener) State() State {
	return l.state
}

// Drop is the implicit teardown. The registration stays attached to its
// target and the host is told to forget the token. Drop on a handle that
// was already torn down does nothing.
func (l *EventListener) Drop() {
	if l.token == 0 {
		return
	}
	t := l.token
	l.token = 0
	l.state = Forgotten
	l.registrar.Forget(t)
}

// Discard is the explicit teardown: the callback is detached from its target.
// Discarding a handle whose token is already gone panics with L001.
func (l *EventListener) Discard() {
	if err := l.TryDiscard(); err != nil {
		panic(err)
	}
}

// TryDiscard is Discard for callers that want the L001 condition as an error.
// Host failures still panic.
func (l *EventListener) TryDiscard() error {
	if l.token == 0 {
		return errors.New("L001").WithDetailf("listener for %q is %s", l.name, l.state)
	}
	t := l.token
	l.token = 0
	l.state = Detached
	l.registrar.Unregister(t)
	return nil
}
