package events

import "github.com/vango-dev/listen/pkg/listener"

type registrar = listener.Registrar
type target = listener.Target
type handle = *listener.EventListener

func on[E listener.StaticEvent[E]](r registrar, t target, cb func(E)) handle {
	return listener.On(r, t, listener.DefaultOptions(), cb)
}

// Mouse events

// OnClick handles click events.
func OnClick(r registrar, t target, cb func(Click)) handle { return on(r, t, cb) }

// OnDblClick handles double-click events.
func OnDblClick(r registrar, t target, cb func(DblClick)) handle { return on(r, t, cb) }

// OnMouseDown handles mousedown events.
func OnMouseDown(r registrar, t target, cb func(MouseDown)) handle { return on(r, t, cb) }

// OnMouseUp handles mouseup events.
func OnMouseUp(r registrar, t target, cb func(MouseUp)) handle { return on(r, t, cb) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(r registrar, t target, cb func(Input)) handle { return on(r, t, cb) }

// OnChange handles change events (fired when value is committed).
func OnChange(r registrar, t target, cb func(Change)) handle { return on(r, t, cb) }

// OnSubmit handles form submit events.
func OnSubmit(r registrar, t target, cb func(Submit)) handle { return on(r, t, cb) }

// OnFocus handles focus events.
func OnFocus(r registrar, t target, cb func(Focus)) handle { return on(r, t, cb) }

// OnBlur handles blur events.
func OnBlur(r registrar, t target, cb func(Blur)) handle { return on(r, t, cb) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(r registrar, t target, cb func(KeyDown)) handle { return on(r, t, cb) }

// OnKeyUp handles keyup events.
func OnKeyUp(r registrar, t target, cb func(KeyUp)) handle { return on(r, t, cb) }

// Other events

// OnScroll handles scroll events. Scroll listeners are registered passive.
func OnScroll(r registrar, t target, cb func(Scroll)) handle {
	return listener.On(r, t, listener.Options{Passive: true}, cb)
}

// OnLoad handles the first load event only.
func OnLoad(r registrar, t target, cb func(Load)) handle {
	return listener.OnceOn(r, t, cb)
}
