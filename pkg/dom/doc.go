// Package dom is an in-process host event system.
//
// It implements listener.Registrar over a tree of Nodes with DOM dispatch
// rules: a capture phase from the root down to the target's parent, a target
// phase, and a bubble phase back up to the root. Once-registrations clear
// themselves after their first delivery, and passive listeners cannot cancel
// the default action.
//
//	host := dom.NewHost(nil)
//	root := dom.NewNode("root")
//	btn := root.Append(dom.NewNode("btn"))
//
//	h := listener.New(host, btn, "click", listener.Options{}, func(e listener.Event) {
//	    ...
//	})
//	host.Fire(btn, "click", nil)
//	h.Discard()
//
// A Host is not safe for concurrent use; it belongs to one event loop.
package dom
