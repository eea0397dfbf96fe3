package join

// Binding associates a key with the element handle and datum it was
// bound to during a previous pass. The element is opaque to this package;
// it is never inspected, only routed into the correct partition.
type Binding[K comparable, D, E any] struct {
	// Key is the identity under which the element was bound.
	Key K

	// Elem is the caller-owned handle attached to the key (for example a
	// UI node, a row cursor, or a managed resource).
	Elem E

	// Datum is the data item the element was last bound to.
	Datum D
}

// Enter describes a new-data item whose key had no binding in the
// previous pass. The caller is expected to create an element for it.
type Enter[K comparable, D any] struct {
	// Key is the identity computed for the incoming datum.
	Key K

	// Datum is the incoming data item.
	Datum D
}

// Update pairs a surviving binding with the datum that matched its key
// in the new collection. The caller is expected to refresh the element
// from Datum; Binding.Datum still holds the previous pass's item.
type Update[K comparable, D, E any] struct {
	// Binding is the prior binding whose key reappeared.
	Binding Binding[K, D, E]

	// Datum is the new data item matched by key.
	Datum D
}

// Result is the three-way partition produced by a join pass.
//
// Every key of the new collection appears in exactly one of Entering or
// Updating, and every binding of the old collection appears in exactly
// one of Updating or Exiting. Entering preserves the relative order of
// the new collection; Exiting preserves the relative order of the old.
type Result[K comparable, D, E any] struct {
	// Entering holds new-data items with no prior binding, in new-data order.
	Entering []Enter[K, D]

	// Updating holds bindings matched by key, in new-data order.
	Updating []Update[K, D, E]

	// Exiting holds bindings whose keys are absent from the new data,
	// in old-binding order.
	Exiting []Binding[K, D, E]
}

// Empty reports whether the pass produced no work in any partition.
func (r Result[K, D, E]) Empty() bool {
	return len(r.Entering) == 0 && len(r.Updating) == 0 && len(r.Exiting) == 0
}
