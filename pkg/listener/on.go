package listener

// StaticEvent is implemented, on its zero value, by every concrete event type.
//
// UncheckedFromEvent may assume the event was delivered under EventType's
// name; it must not fail for such events.
type StaticEvent[E any] interface {
	EventType() string
	UncheckedFromEvent(Event) E
}

// On registers cb for events of type E on target. Every delivered event is
// narrowed to E exactly once before cb sees it.
func On[E StaticEvent[E]](r Registrar, target Target, opts Options, cb func(E)) *EventListener {
	var tag E
	return New(r, target, tag.EventType(), opts, func(e Event) {
		cb(tag.UncheckedFromEvent(e))
	})
}

// OnceOn is the typed form of Once.
func OnceOn[E StaticEvent[E]](r Registrar, target Target, cb func(E)) *EventListener {
	var tag E
	return Once(r, target, tag.EventType(), func(e Event) {
		cb(tag.UncheckedFromEvent(e))
	})
}
