package discard

import "github.com/vango-dev/listen/internal/errors"

// Group owns the discardable resources of one node.
// A Group is itself a Discarder and a Dropper, so groups nest.
type Group struct {
	items   []Discarder
	done    bool
	dropped bool
}

// NewGroup creates a group holding items.
func NewGroup(items ...Discarder) *Group {
	g := &Group{}
	for _, d := range items {
		g.Add(d)
	}
	return g
}

// Add appends d to the group. Nil values are ignored.
func (g *Group) Add(d Discarder) {
	if g.done {
		panic(errors.New("L007"))
	}
	if d == nil {
		return
	}
	g.items = append(g.items, d)
}

// Len returns the number of resources held.
func (g *Group) Len() int {
	return len(g.items)
}

// Discard discards every member, last added first.
func (g *Group) Discard() {
	if g.dropped {
		panic(errors.New("L008").WithDetail("discard.Group was dropped"))
	}
	if g.done {
		panic(errors.New("L006"))
	}
	g.done = true

	items := g.items
	g.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Discard()
	}
}

// Drop runs the implicit teardown of every member that has one.
// Members without a Drop method are left as they are. Drop after Discard or
// Drop does nothing; Discard after Drop panics with L008.
func (g *Group) Drop() {
	if g.done {
		return
	}
	g.done = true
	g.dropped = true

	items := g.items
	g.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		if d, ok := items[i].(Dropper); ok {
			d.Drop()
		}
	}
}
