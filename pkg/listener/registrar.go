package listener

import "strconv"

// Token identifies one registration held by a Registrar. Zero is never issued.
type Token uint64

// String returns the decimal form of the token.
func (t Token) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Target is anything a host can attach listeners to.
type Target interface {
	TargetID() string
}

// Event is the generic event object delivered by a host.
type Event interface {
	// Type returns the event name, e.g. "click".
	Type() string

	// Target returns the node the event was dispatched to.
	Target() Target

	// Field returns an event payload field such as "key" or "value".
	Field(name string) (string, bool)

	// PreventDefault cancels the default action. Ignored for passive listeners.
	PreventDefault()

	// DefaultPrevented reports whether PreventDefault took effect.
	DefaultPrevented() bool
}

// Registrar is the host event system that performs the actual attach and
// detach of callbacks.
//
// All methods are infallible from the caller's point of view: an
// implementation that cannot honor a call panics with a coded error
// (L002 for attach failures, L003 for detach failures) rather than returning.
//
// Unregister and Forget must accept the token of a once-registration that has
// already fired and self-cleared.
type Registrar interface {
	// Register attaches cb to target for events named name.
	Register(target Target, name string, opts Options, cb func(Event)) Token

	// RegisterOnce attaches cb so that it fires at most one time.
	RegisterOnce(target Target, name string, cb func(Event)) Token

	// Unregister detaches the registration.
	Unregister(t Token)

	// Forget records that the registration is intentionally left attached.
	Forget(t Token)
}
