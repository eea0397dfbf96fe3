// Package binder provides the stateful layer around the join package:
// a Binder holds the bound set between passes, fires element lifecycle
// hooks, and feeds each pass's survivors into the next.
//
// The split mirrors how the join is meant to be consumed: the join
// itself is a pure function, and whatever persistent state exists lives
// with the caller. Binder is that caller, packaged: it remembers
// updating plus newly created entering elements as the next pass's old
// set and discards exiting elements after their Remove hook ran.
//
// # Usage Example
//
//	b := binder.New(func(r Row) string { return r.ID }, binder.Hooks[string, Row, *Widget]{
//	    Create:  func(key string, r Row) (*Widget, error) { return NewWidget(r), nil },
//	    Refresh: func(w *Widget, r Row) error { return w.Update(r) },
//	    Remove:  func(w *Widget) error { return w.Close() },
//	})
//
//	res, err := b.Apply(rows)   // first pass: everything enters
//	res, err = b.Apply(rows2)   // later passes: keyed enter/update/exit
//	_ = b.Reset()               // release everything
package binder
