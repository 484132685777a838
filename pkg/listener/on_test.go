package listener

import "testing"

type clickEvent struct {
	Event
}

func (clickEvent) EventType() string { return "click" }

func (clickEvent) UncheckedFromEvent(e Event) clickEvent { return clickEvent{Event: e} }

func (c clickEvent) Button() string {
	v, _ := c.Field("button")
	return v
}

func TestOn_RegistersUnderTagAndNarrows(t *testing.T) {
	r := newFakeRegistrar()
	var got []clickEvent

	h := On(r, node("btn"), Options{Passive: true}, func(c clickEvent) {
		got = append(got, c)
	})

	reg := r.regs[h.Token()]
	if reg.name != "click" {
		t.Fatalf("registered under %q, want click", reg.name)
	}
	if !reg.opts.Passive {
		t.Error("options should pass through On")
	}

	ev := &fakeEvent{typ: "click", target: node("btn"), fields: map[string]string{"button": "0"}}
	r.deliver(h.Token(), ev)
	r.deliver(h.Token(), ev)

	if len(got) != 2 {
		t.Fatalf("callback ran %d times, want 2", len(got))
	}
	if got[0].Event != Event(ev) {
		t.Error("narrowed event should wrap the delivered event")
	}
	if got[0].Button() != "0" {
		t.Errorf("Button() = %q, want 0", got[0].Button())
	}

	h.Discard()
	if len(r.unregistered) != 1 {
		t.Errorf("unregistered = %v", r.unregistered)
	}
}

func TestOnceOn(t *testing.T) {
	r := newFakeRegistrar()
	calls := 0
	h := OnceOn(r, node("btn"), func(clickEvent) { calls++ })

	if !r.regs[h.Token()].once {
		t.Fatal("OnceOn should use RegisterOnce")
	}
	r.deliver(h.Token(), &fakeEvent{typ: "click"})
	r.deliver(h.Token(), &fakeEvent{typ: "click"})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	h.Drop()
}
