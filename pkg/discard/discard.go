package discard

import (
	"context"
	"io"
	"log/slog"

	"github.com/vango-dev/listen/internal/errors"
)

// Discarder is implemented by resources with an explicit, one-shot teardown.
// After Discard returns the resource must not be used again.
type Discarder interface {
	Discard()
}

// Dropper is implemented by resources with custom implicit teardown.
type Dropper interface {
	Drop()
}

// Logger receives errors from teardown paths that cannot return them
// (for example a Close error inside Value.Discard). Defaults to slog.Default().
var Logger *slog.Logger

func logger() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}

// Value holds a value whose teardown only runs on explicit Discard.
//
// If Discard is never called the value is never torn down. This is a
// deliberate leak: Value is for values that must outlive their nominal scope
// unless someone releases them.
type Value[A any] struct {
	value     A
	discarded bool
}

// NewValue wraps v.
func NewValue[A any](v A) *Value[A] {
	return &Value[A]{value: v}
}

// Get returns the held value.
func (v *Value[A]) Get() A {
	return v.value
}

// Discard runs the value's teardown exactly once: Discard if the value is a
// Discarder, Close if it is an io.Closer. Any other value is simply released.
func (v *Value[A]) Discard() {
	if v.discarded {
		panic(errors.New("L004"))
	}
	v.discarded = true

	value := v.value
	var zero A
	v.value = zero

	switch d := any(value).(type) {
	case Discarder:
		d.Discard()
	case io.Closer:
		if err := d.Close(); err != nil {
			logger().LogAttrs(context.Background(), slog.LevelError, "deferred value close failed",
				slog.Any("error", err))
		}
	}
}

// Drop is the implicit path: the value stays alive and untouched. Drop
// consumes nothing, so a later Discard still releases the value.
func (v *Value[A]) Drop() {}

// Func holds a cleanup callback that only runs on explicit Discard.
type Func struct {
	fn        func()
	discarded bool
	dropped   bool
}

// NewFunc wraps fn.
func NewFunc(fn func()) *Func {
	return &Func{fn: fn}
}

// Discard calls the callback exactly once. Discard after Drop panics with
// L008: the callback is gone.
func (f *Func) Discard() {
	if f.discarded {
		panic(errors.New("L005"))
	}
	if f.dropped {
		panic(errors.New("L008").WithDetail("discard.Func was dropped"))
	}
	f.discarded = true

	fn := f.fn
	f.fn = nil
	if fn != nil {
		fn()
	}
}

// Drop releases the callback without calling it. Drop after Discard does
// nothing.
func (f *Func) Drop() {
	if f.discarded {
		return
	}
	f.dropped = true
	f.fn = nil
}
