// Package join implements a generic keyed data join: the three-way
// partition of a new data collection against a previously bound
// collection into entering, updating, and exiting sets.
//
// The join is the reconciliation step behind any system that keeps a
// set of live elements (UI nodes, managed resources, cache entries) in
// sync with a stream of data snapshots. Each pass correlates old and
// new entries by key, so an element survives as long as its key keeps
// appearing, regardless of where the item moves within the collection.
//
// # Partitions
//
// Given the previously bound collection and a new snapshot:
//
//   - Entering: items whose key had no binding. Create an element.
//   - Updating: bindings whose key reappeared. Refresh the element.
//   - Exiting: bindings whose key is gone. Release the element.
//
// Every new key lands in exactly one of Entering or Updating; every old
// binding lands in exactly one of Updating or Exiting. Entering keeps
// new-data order, Exiting keeps old-binding order.
//
// # Keyed vs positional joins
//
// Keyed correlates by a caller-supplied key function. ByIndex correlates
// by position, which means a size change reclassifies items at shifted
// positions rather than tracking identities; prefer Keyed whenever the
// data carries a stable identity field.
//
// # Lifecycle
//
// Per key, across repeated passes: absent, then bound on its first
// Entering classification, bound while it keeps landing in Updating,
// absent again after it is surfaced once in Exiting. An exited element
// is never resurrected; a returning key enters with a fresh element.
//
// # Purity
//
// A join pass is a pure function of its inputs. It holds no state
// between calls and is safe to invoke concurrently on disjoint inputs.
// The persistent bound set, if any, lives with the caller; see the
// binder package for an explicit pass-to-pass state holder.
//
// # Usage Example
//
//	old := []join.Binding[string, Row, *Widget]{
//	    {Key: "a", Elem: widgetA, Datum: rowA},
//	    {Key: "b", Elem: widgetB, Datum: rowB},
//	}
//
//	res, err := join.Keyed(old, rows, func(r Row) string { return r.ID })
//	if err != nil {
//	    var dup *join.DuplicateKeyError[string]
//	    if errors.As(err, &dup) {
//	        // rows carried the same ID twice
//	    }
//	}
//
//	for _, e := range res.Entering { /* create element for e.Datum */ }
//	for _, u := range res.Updating { /* refresh u.Binding.Elem from u.Datum */ }
//	for _, b := range res.Exiting  { /* release b.Elem */ }
package join
