// Package listener manages event subscriptions on host event targets.
//
// An EventListener is a handle for one (target, event name, options, callback)
// registration held by a host event system (the Registrar). The handle has
// two teardown paths with different meanings:
//
//	Drop()    - the owning node lost track of the handle; the registration
//	            stays attached and the host is told to forget the token.
//	Discard() - the owning node is being torn down; the host unregisters the
//	            callback immediately.
//
// Exactly one of the two runs for a handle. The state machine is:
//
//	Attached --Discard--> Detached   (registration removed)
//	Attached --Drop-----> Forgotten  (registration left active)
//
// # Typed events
//
// On is the generic entry point for typed callbacks. Each concrete event type
// implements StaticEvent on its zero value, supplying its event name and the
// narrowing conversion from the generic Event:
//
//	type Click struct{ listener.Event }
//
//	func (Click) EventType() string                        { return "click" }
//	func (Click) UncheckedFromEvent(e listener.Event) Click { return Click{e} }
//
//	h := listener.On(host, button, listener.Options{}, func(c Click) { ... })
//	defer h.Drop()
//
// # Threading
//
// Handles are not safe for concurrent use. They are created, dropped and
// discarded on the event loop that delivers their callbacks.
package listener
