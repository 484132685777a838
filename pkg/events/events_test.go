package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/listen/pkg/dom"
	"github.com/vango-dev/listen/pkg/listener"
)

func newHost() *dom.Host {
	return dom.NewHost(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{"Click", Click{}.EventType(), "click"},
		{"DblClick", DblClick{}.EventType(), "dblclick"},
		{"MouseDown", MouseDown{}.EventType(), "mousedown"},
		{"MouseUp", MouseUp{}.EventType(), "mouseup"},
		{"Input", Input{}.EventType(), "input"},
		{"Change", Change{}.EventType(), "change"},
		{"Submit", Submit{}.EventType(), "submit"},
		{"Focus", Focus{}.EventType(), "focus"},
		{"Blur", Blur{}.EventType(), "blur"},
		{"KeyDown", KeyDown{}.EventType(), "keydown"},
		{"KeyUp", KeyUp{}.EventType(), "keyup"},
		{"Scroll", Scroll{}.EventType(), "scroll"},
		{"Load", Load{}.EventType(), "load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tag != tt.want {
				t.Errorf("EventType() = %q, want %q", tt.tag, tt.want)
			}
		})
	}
}

func TestOnClickNarrows(t *testing.T) {
	host := newHost()
	btn := dom.NewNode("btn")
	var got []Click

	h := OnClick(host, btn, func(c Click) { got = append(got, c) })
	if h.Name() != "click" {
		t.Fatalf("Name() = %q, want click", h.Name())
	}

	host.Fire(btn, "click", map[string]string{FieldButton: "2", FieldClientX: "10", FieldClientY: "x"})
	host.Fire(btn, "input", nil)

	if len(got) != 1 {
		t.Fatalf("callback ran %d times, want 1", len(got))
	}
	c := got[0]
	if c.Button() != 2 || c.ClientX() != 10 {
		t.Errorf("Button()=%d ClientX()=%d", c.Button(), c.ClientX())
	}
	if c.ClientY() != 0 {
		t.Errorf("ClientY() with bad payload = %d, want 0", c.ClientY())
	}
	if c.Target().TargetID() != "btn" {
		t.Errorf("Target() = %q", c.Target().TargetID())
	}
}

func TestFormAndKeyboardEvents(t *testing.T) {
	host := newHost()
	field := dom.NewNode("name")
	var value, key string
	var mods int

	OnInput(host, field, func(e Input) { value = e.Value() })
	OnKeyDown(host, field, func(e KeyDown) { key, mods = e.Key(), e.Modifiers() })

	host.Fire(field, "input", map[string]string{FieldValue: "ada"})
	host.Fire(field, "keydown", map[string]string{FieldKey: "Enter", FieldModifiers: "3"})

	if value != "ada" {
		t.Errorf("Value() = %q, want ada", value)
	}
	if key != "Enter" || mods != 3 {
		t.Errorf("Key()=%q Modifiers()=%d", key, mods)
	}
}

func TestOnScrollIsPassive(t *testing.T) {
	host := newHost()
	list := dom.NewNode("list")
	top := -1

	OnScroll(host, list, func(e Scroll) {
		top = e.ScrollTop()
		e.PreventDefault()
	})

	ev := host.Fire(list, "scroll", map[string]string{FieldScrollTop: "120"})
	if top != 120 {
		t.Errorf("ScrollTop() = %d, want 120", top)
	}
	if ev.DefaultPrevented() {
		t.Error("scroll listener should be passive")
	}
}

func TestOnLoadFiresOnce(t *testing.T) {
	host := newHost()
	doc := dom.NewNode("document")
	calls := 0

	h := OnLoad(host, doc, func(Load) { calls++ })
	host.Fire(doc, "load", nil)
	host.Fire(doc, "load", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	h.Discard()
	if h.State() != listener.Detached {
		t.Errorf("State() = %v", h.State())
	}
}

func TestOnWithCaptureOptions(t *testing.T) {
	host := newHost()
	root := dom.NewNode("root")
	btn := root.Append(dom.NewNode("btn"))
	var order []string

	listener.On(host, root, listener.Options{Capture: true}, func(Focus) { order = append(order, "root") })
	OnFocus(host, btn, func(Focus) { order = append(order, "btn") })

	host.Dispatch(btn, dom.NewEvent("focus", false, nil))
	if len(order) != 2 || order[0] != "root" || order[1] != "btn" {
		t.Errorf("order = %v, want [root btn]", order)
	}
}
