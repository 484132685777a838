package dom

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/listen/internal/errors"
	"github.com/vango-dev/listen/pkg/listener"
)

func quietHost() *Host {
	return NewHost(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// tree builds root > form > btn.
func tree() (root, form, btn *Node) {
	root = NewNode("root")
	form = root.Append(NewNode("form"))
	btn = form.Append(NewNode("btn"))
	return root, form, btn
}

func expectPanicCode(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		e, ok := errors.FromPanic(recover())
		if !ok {
			t.Fatalf("expected panic with %s", code)
		}
		if e.Code != code {
			t.Fatalf("panic code = %s, want %s", e.Code, code)
		}
	}()
	fn()
}

func TestDispatch_PhaseOrder(t *testing.T) {
	host := quietHost()
	root, form, btn := tree()
	var order []string

	record := func(label string) func(listener.Event) {
		return func(e listener.Event) {
			ev := e.(*Event)
			order = append(order, label+"@"+ev.Phase().String())
		}
	}

	listener.New(host, root, "click", listener.Options{Capture: true}, record("root-capture"))
	listener.New(host, root, "click", listener.Options{}, record("root-bubble"))
	listener.New(host, form, "click", listener.Options{Capture: true}, record("form-capture"))
	listener.New(host, form, "click", listener.Options{}, record("form-bubble"))
	listener.New(host, btn, "click", listener.Options{}, record("btn"))
	listener.New(host, btn, "input", listener.Options{}, record("btn-input"))

	host.Fire(btn, "click", nil)

	want := []string{
		"root-capture@capturing",
		"form-capture@capturing",
		"btn@at-target",
		"form-bubble@bubbling",
		"root-bubble@bubbling",
	}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestDispatch_NonBubblingAndStopPropagation(t *testing.T) {
	host := quietHost()
	root, _, btn := tree()
	rootCalls := 0

	listener.New(host, root, "focus", listener.Options{}, func(listener.Event) { rootCalls++ })
	host.Dispatch(btn, NewEvent("focus", false, nil))
	if rootCalls != 0 {
		t.Errorf("non-bubbling event reached root %d times", rootCalls)
	}

	listener.New(host, btn, "click", listener.Options{}, func(e listener.Event) {
		e.(*Event).StopPropagation()
	})
	listener.New(host, root, "click", listener.Options{}, func(listener.Event) { rootCalls++ })
	host.Fire(btn, "click", nil)
	if rootCalls != 0 {
		t.Errorf("stopped event reached root %d times", rootCalls)
	}
}

func TestPassiveCannotPreventDefault(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()

	listener.New(host, btn, "wheel", listener.Options{Passive: true}, func(e listener.Event) {
		e.PreventDefault()
	})
	if ev := host.Fire(btn, "wheel", nil); ev.DefaultPrevented() {
		t.Error("passive listener should not prevent default")
	}

	listener.New(host, btn, "submit", listener.Options{}, func(e listener.Event) {
		e.PreventDefault()
	})
	if ok := host.Dispatch(btn, NewEvent("submit", true, nil)); ok {
		t.Error("Dispatch should return false when default is prevented")
	}
}

func TestOnceRegistrationFiresOnce(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()
	calls := 0

	h := listener.Once(host, btn, "click", func(listener.Event) { calls++ })
	host.Fire(btn, "click", nil)
	host.Fire(btn, "click", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if host.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after once delivery", host.Active())
	}
	if host.Spent() != 1 {
		t.Errorf("Spent() = %d, want 1", host.Spent())
	}

	// Discarding a self-cleared handle is allowed.
	h.Discard()
	if host.Spent() != 0 {
		t.Errorf("Spent() = %d, want 0 after Discard", host.Spent())
	}
}

func TestOnceOption(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()
	calls := 0

	h := listener.New(host, btn, "click", listener.Options{Once: true}, func(listener.Event) { calls++ })
	host.Fire(btn, "click", nil)
	host.Fire(btn, "click", nil)
	h.Drop()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if host.Spent() != 0 {
		t.Errorf("Spent() = %d, want 0 after Drop", host.Spent())
	}
}

func TestDropKeepsListenerAttached(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()
	calls := 0

	h := listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) { calls++ })
	h.Drop()

	host.Fire(btn, "click", nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1 after Drop", calls)
	}
	if host.Active() != 1 || host.Forgotten() != 1 {
		t.Errorf("Active()=%d Forgotten()=%d, want 1/1", host.Active(), host.Forgotten())
	}
}

func TestDiscardDetachesListener(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()
	calls := 0

	h := listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) { calls++ })
	h.Discard()

	host.Fire(btn, "click", nil)
	if calls != 0 {
		t.Errorf("calls = %d, want 0 after Discard", calls)
	}
	if host.Listeners(btn) != 0 {
		t.Errorf("Listeners(btn) = %d, want 0", host.Listeners(btn))
	}
}

func TestRemovalDuringDispatch(t *testing.T) {
	host := quietHost()
	_, _, btn := tree()
	secondCalls, addedCalls := 0, 0

	var second *listener.EventListener
	listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) {
		second.Discard()
		listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) { addedCalls++ })
	})
	second = listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) { secondCalls++ })

	host.Fire(btn, "click", nil)
	if secondCalls != 0 {
		t.Errorf("listener removed during dispatch ran %d times", secondCalls)
	}
	if addedCalls != 0 {
		t.Errorf("listener added during dispatch ran %d times", addedCalls)
	}
}

func TestCollect(t *testing.T) {
	host := quietHost()
	root, form, btn := tree()

	dropped := listener.New(host, btn, "click", listener.DefaultOptions(), func(listener.Event) {})
	dropped.Drop()
	live := listener.New(host, form, "submit", listener.DefaultOptions(), func(listener.Event) {})
	listener.New(host, root, "click", listener.DefaultOptions(), func(listener.Event) {})

	form.Remove()
	if n := host.Collect(form); n != 2 {
		t.Errorf("Collect() = %d, want 2", n)
	}
	if host.Active() != 1 {
		t.Errorf("Active() = %d, want 1", host.Active())
	}

	// The live handle can still be torn down normally.
	live.Discard()
	if host.Spent() != 0 {
		t.Errorf("Spent() = %d, want 0", host.Spent())
	}
}

func TestHostFailuresAreFatal(t *testing.T) {
	host := quietHost()

	expectPanicCode(t, "L002", func() {
		host.Register(nil, "click", listener.Options{}, func(listener.Event) {})
	})
	expectPanicCode(t, "L002", func() {
		host.Register(NewNode("x"), "click", listener.Options{}, nil)
	})
	expectPanicCode(t, "L003", func() { host.Unregister(99) })
	expectPanicCode(t, "L003", func() { host.Forget(99) })
}

func TestOptionsObservedByHost(t *testing.T) {
	host := quietHost()
	btn := NewNode("btn")
	opts := listener.Options{Capture: true, Passive: false, Once: false}

	h := listener.New(host, btn, "click", opts, func(listener.Event) {})
	reg := host.regs[h.Token()]
	if reg.opts != opts {
		t.Errorf("host observed %+v, want %+v", reg.opts, opts)
	}
}
