package dom

import (
	"context"
	"log/slog"

	"github.com/vango-dev/listen/internal/errors"
	"github.com/vango-dev/listen/pkg/listener"
)

type registration struct {
	token     listener.Token
	node      *Node
	name      string
	opts      listener.Options
	cb        func(listener.Event)
	forgotten bool
}

// Host stores registrations and dispatches events to them.
type Host struct {
	logger *slog.Logger

	next   listener.Token
	regs   map[listener.Token]*registration
	byNode map[*Node][]listener.Token

	// spent holds once-registrations that fired and cleared themselves.
	// Their handles may still be dropped or discarded.
	spent map[listener.Token]struct{}
}

var _ listener.Registrar = (*Host)(nil)

// NewHost creates a Host. A nil logger means slog.Default().
func NewHost(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		logger: logger,
		regs:   make(map[listener.Token]*registration),
		byNode: make(map[*Node][]listener.Token),
		spent:  make(map[listener.Token]struct{}),
	}
}

// Register implements listener.Registrar.
func (h *Host) Register(target listener.Target, name string, opts listener.Options, cb func(listener.Event)) listener.Token {
	node, ok := target.(*Node)
	if !ok || node == nil {
		panic(errors.New("L002").WithDetailf("target %T is not a dom node", target))
	}
	if cb == nil {
		panic(errors.New("L002").WithDetailf("nil callback for %q on %q", name, node.id))
	}

	h.next++
	t := h.next
	h.regs[t] = &registration{token: t, node: node, name: name, opts: opts, cb: cb}
	h.byNode[node] = append(h.byNode[node], t)

	h.logger.LogAttrs(context.Background(), slog.LevelDebug, "listener registered",
		slog.String("token", t.String()),
		slog.String("target", node.id),
		slog.String("event", name),
		slog.Bool("capture", opts.Capture),
		slog.Bool("passive", opts.Passive),
		slog.Bool("once", opts.Once))
	return t
}

// RegisterOnce implements listener.Registrar.
func (h *Host) RegisterOnce(target listener.Target, name string, cb func(listener.Event)) listener.Token {
	return h.Register(target, name, listener.Options{Once: true}, cb)
}

// Unregister implements listener.Registrar.
func (h *Host) Unregister(t listener.Token) {
	if _, ok := h.spent[t]; ok {
		delete(h.spent, t)
		return
	}
	if _, ok := h.regs[t]; !ok {
		panic(errors.New("L003").WithDetailf("unknown token %s", t))
	}
	h.remove(t)
	h.logger.Debug("listener unregistered", "token", t)
}

// Forget implements listener.Registrar. The registration keeps receiving events.
func (h *Host) Forget(t listener.Token) {
	if _, ok := h.spent[t]; ok {
		delete(h.spent, t)
		return
	}
	reg, ok := h.regs[t]
	if !ok {
		panic(errors.New("L003").WithDetailf("unknown token %s", t))
	}
	reg.forgotten = true
	h.logger.Debug("listener forgotten", "token", t, "target", reg.node.id)
}

// Active returns the number of live registrations, forgotten ones included.
func (h *Host) Active() int {
	return len(h.regs)
}

// Forgotten returns the number of live registrations whose handle was dropped.
func (h *Host) Forgotten() int {
	n := 0
	for _, reg := range h.regs {
		if reg.forgotten {
			n++
		}
	}
	return n
}

// Listeners returns the number of registrations on node.
func (h *Host) Listeners(node *Node) int {
	return len(h.byNode[node])
}

// Collect removes every registration in node's subtree, forgotten or not.
// It models the host reclaiming listeners of nodes that no longer exist and
// returns how many were removed. Handles still owning a collected token can
// be dropped or discarded as usual.
func (h *Host) Collect(node *Node) int {
	n := 0
	node.walk(func(c *Node) {
		for _, t := range append([]listener.Token(nil), h.byNode[c]...) {
			h.retire(h.regs[t])
			n++
		}
	})
	if n > 0 {
		h.logger.Debug("listeners collected", "target", node.id, "count", n)
	}
	return n
}

// Fire dispatches a bubbling event of type typ at target.
func (h *Host) Fire(target *Node, typ string, fields map[string]string) *Event {
	e := NewEvent(typ, true, fields)
	h.Dispatch(target, e)
	return e
}

// Dispatch delivers e to target and its ancestors. It returns false if a
// listener prevented the default action.
func (h *Host) Dispatch(target *Node, e *Event) bool {
	e.target = target
	path := target.path()

	e.phase = PhaseCapturing
	for _, n := range path {
		if h.invoke(n, e, func(r *registration) bool { return r.opts.Capture }) {
			return h.finish(e)
		}
	}

	e.phase = PhaseAtTarget
	if h.invoke(target, e, func(*registration) bool { return true }) {
		return h.finish(e)
	}

	if e.bubbles {
		e.phase = PhaseBubbling
		for i := len(path) - 1; i >= 0; i-- {
			if h.invoke(path[i], e, func(r *registration) bool { return !r.opts.Capture }) {
				break
			}
		}
	}
	return h.finish(e)
}

func (h *Host) finish(e *Event) bool {
	e.phase = PhaseNone
	e.current = nil
	e.passive = false
	return !e.prevented
}

// invoke runs the matching listeners on n and reports whether propagation
// was stopped. Listeners added during dispatch are not run; listeners
// removed during dispatch are skipped.
func (h *Host) invoke(n *Node, e *Event, match func(*registration) bool) bool {
	tokens := h.byNode[n]
	if len(tokens) == 0 {
		return false
	}
	snapshot := append([]listener.Token(nil), tokens...)

	e.current = n
	for _, t := range snapshot {
		reg, ok := h.regs[t]
		if !ok || reg.name != e.typ || !match(reg) {
			continue
		}
		if reg.opts.Once {
			h.retire(reg)
		}
		e.passive = reg.opts.Passive
		reg.cb(e)
		e.passive = false
	}
	return e.stopped
}

// retire removes a registration the host cleared on its own. Unless the
// handle was already dropped, its token is kept in spent for the handle's
// eventual Drop or Discard.
func (h *Host) retire(reg *registration) {
	h.remove(reg.token)
	if !reg.forgotten {
		h.spent[reg.token] = struct{}{}
	}
}

// Spent returns the number of self-cleared registrations whose handle has not
// been torn down yet.
func (h *Host) Spent() int {
	return len(h.spent)
}

func (h *Host) remove(t listener.Token) {
	reg, ok := h.regs[t]
	if !ok {
		return
	}
	delete(h.regs, t)

	tokens := h.byNode[reg.node]
	for i, other := range tokens {
		if other == t {
			tokens = append(tokens[:i], tokens[i+1:]...)
			break
		}
	}
	if len(tokens) == 0 {
		delete(h.byNode, reg.node)
	} else {
		h.byNode[reg.node] = tokens
	}
}
