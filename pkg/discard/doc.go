// Package discard provides resources with two independent teardown paths.
//
// A resource owned by a UI node can leave its owner in two ways:
//
//	Drop()    - implicit teardown. The owner stopped tracking the resource as a
//	            side effect of bookkeeping; the resource must stay alive.
//	Discard() - explicit teardown. The owner is being torn down; the resource
//	            is released immediately and exactly once.
//
// Go has no scope-exit destructors, so the implicit path is spelled out:
//
//	v := discard.NewValue(conn)
//	defer v.Drop()     // leaves conn open unless...
//	...
//	v.Discard()        // ...this runs first, which closes it
//
// Drop after Discard is a no-op. Discard after Discard is an invariant
// violation and panics with a coded *errors.Error (L004, L005, L006).
//
// Whether Discard may follow Drop depends on what Drop consumed:
//
//	Value - Drop consumes nothing; a later Discard releases the value.
//	Func  - Drop releases the callback; a later Discard panics with L008.
//	Group - Drop hands every member its implicit teardown; a later Discard
//	        panics with L008.
//
// Group collects heterogeneous Discarders owned by one node so they can be
// dropped or discarded together.
package discard
