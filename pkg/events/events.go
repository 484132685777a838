package events

import (
	"strconv"

	"github.com/vango-dev/listen/pkg/listener"
)

// Event type names.
const (
	TypeClick     = "click"
	TypeDblClick  = "dblclick"
	TypeMouseDown = "mousedown"
	TypeMouseUp   = "mouseup"
	TypeInput     = "input"
	TypeChange    = "change"
	TypeSubmit    = "submit"
	TypeFocus     = "focus"
	TypeBlur      = "blur"
	TypeKeyDown   = "keydown"
	TypeKeyUp     = "keyup"
	TypeScroll    = "scroll"
	TypeLoad      = "load"
)

// Standard payload field names.
const (
	FieldButton    = "button"
	FieldClientX   = "clientX"
	FieldClientY   = "clientY"
	FieldValue     = "value"
	FieldKey       = "key"
	FieldCode      = "code"
	FieldModifiers = "modifiers"
	FieldScrollTop = "scrollTop"
)

func intField(e listener.Event, name string) int {
	v, ok := e.Field(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func stringField(e listener.Event, name string) string {
	v, _ := e.Field(name)
	return v
}

// Mouse holds the fields shared by mouse events.
type Mouse struct {
	listener.Event
}

// Button returns the pressed button (0 primary, 1 middle, 2 secondary).
func (m Mouse) Button() int { return intField(m.Event, FieldButton) }

// ClientX returns the horizontal pointer position.
func (m Mouse) ClientX() int { return intField(m.Event, FieldClientX) }

// ClientY returns the vertical pointer position.
func (m Mouse) ClientY() int { return intField(m.Event, FieldClientY) }

// Click is a "click" event.
type Click struct{ Mouse }

func (Click) EventType() string                         { return TypeClick }
func (Click) UncheckedFromEvent(e listener.Event) Click { return Click{Mouse{e}} }

// DblClick is a "dblclick" event.
type DblClick struct{ Mouse }

func (DblClick) EventType() string                            { return TypeDblClick }
func (DblClick) UncheckedFromEvent(e listener.Event) DblClick { return DblClick{Mouse{e}} }

// MouseDown is a "mousedown" event.
type MouseDown struct{ Mouse }

func (MouseDown) EventType() string                             { return TypeMouseDown }
func (MouseDown) UncheckedFromEvent(e listener.Event) MouseDown { return MouseDown{Mouse{e}} }

// MouseUp is a "mouseup" event.
type MouseUp struct{ Mouse }

func (MouseUp) EventType() string                           { return TypeMouseUp }
func (MouseUp) UncheckedFromEvent(e listener.Event) MouseUp { return MouseUp{Mouse{e}} }

// Input is an "input" event, fired on every value change.
type Input struct{ listener.Event }

func (Input) EventType() string                         { return TypeInput }
func (Input) UncheckedFromEvent(e listener.Event) Input { return Input{e} }

// Value returns the new value of the input.
func (i Input) Value() string { return stringField(i.Event, FieldValue) }

// Change is a "change" event, fired when a value is committed.
type Change struct{ listener.Event }

func (Change) EventType() string                          { return TypeChange }
func (Change) UncheckedFromEvent(e listener.Event) Change { return Change{e} }

// Value returns the committed value.
func (c Change) Value() string { return stringField(c.Event, FieldValue) }

// Submit is a form "submit" event.
type Submit struct{ listener.Event }

func (Submit) EventType() string                          { return TypeSubmit }
func (Submit) UncheckedFromEvent(e listener.Event) Submit { return Submit{e} }

// Focus is a "focus" event.
type Focus struct{ listener.Event }

func (Focus) EventType() string                         { return TypeFocus }
func (Focus) UncheckedFromEvent(e listener.Event) Focus { return Focus{e} }

// Blur is a "blur" event.
type Blur struct{ listener.Event }

func (Blur) EventType() string                        { return TypeBlur }
func (Blur) UncheckedFromEvent(e listener.Event) Blur { return Blur{e} }

// Keyboard holds the fields shared by key events.
type Keyboard struct {
	listener.Event
}

// Key returns the key value, e.g. "Enter" or "a".
func (k Keyboard) Key() string { return stringField(k.Event, FieldKey) }

// Code returns the physical key code, e.g. "KeyA".
func (k Keyboard) Code() string { return stringField(k.Event, FieldCode) }

// Modifiers returns the modifier bit set (1 ctrl, 2 shift, 4 alt, 8 meta).
func (k Keyboard) Modifiers() int { return intField(k.Event, FieldModifiers) }

// KeyDown is a "keydown" event.
type KeyDown struct{ Keyboard }

func (KeyDown) EventType() string                           { return TypeKeyDown }
func (KeyDown) UncheckedFromEvent(e listener.Event) KeyDown { return KeyDown{Keyboard{e}} }

// KeyUp is a "keyup" event.
type KeyUp struct{ Keyboard }

func (KeyUp) EventType() string                         { return TypeKeyUp }
func (KeyUp) UncheckedFromEvent(e listener.Event) KeyUp { return KeyUp{Keyboard{e}} }

// Scroll is a "scroll" event.
type Scroll struct{ listener.Event }

func (Scroll) EventType() string                          { return TypeScroll }
func (Scroll) UncheckedFromEvent(e listener.Event) Scroll { return Scroll{e} }

// ScrollTop returns the vertical scroll offset.
func (s Scroll) ScrollTop() int { return intField(s.Event, FieldScrollTop) }

// Load is a "load" event.
type Load struct{ listener.Event }

func (Load) EventType() string                        { return TypeLoad }
func (Load) UncheckedFromEvent(e listener.Event) Load { return Load{e} }
