package binder

import (
	"fmt"

	"datajoin/core/join"
)

// Hooks holds the element lifecycle callbacks a Binder fires while
// applying a pass. Each hook is invoked exactly once per entry of its
// partition. Any nil hook is skipped; with a nil Create the zero value
// of E is bound.
type Hooks[K comparable, D, E any] struct {
	// Create builds an element for an entering datum.
	Create func(key K, datum D) (E, error)

	// Refresh updates an element from the datum matched to its key.
	Refresh func(elem E, datum D) error

	// Remove releases an element whose key left the data.
	Remove func(elem E) error
}

// Binder owns the bound set between join passes. It replaces the
// implicit "current selection" singleton of the chart grammars this
// engine grew out of with explicit, caller-held state: each Apply joins
// the held bound set against a new snapshot, fires the lifecycle hooks,
// and advances the bound set to updating plus freshly created entering
// elements, in new-data order.
//
// A Binder is not safe for concurrent Apply calls; callers that share
// one across goroutines must serialize access.
type Binder[K comparable, D, E any] struct {
	keyOf func(D) K
	hooks Hooks[K, D, E]
	bound []join.Binding[K, D, E]
	pass  int
}

// New creates a Binder with an empty bound set.
func New[K comparable, D, E any](keyOf func(D) K, hooks Hooks[K, D, E]) *Binder[K, D, E] {
	return &Binder[K, D, E]{keyOf: keyOf, hooks: hooks}
}

// Apply joins the held bound set against data, fires the hooks (exiting
// removals first, then entering creations, then updating refreshes),
// and advances the bound set. It returns the pass's partition.
//
// On any error, from the join itself or from a hook, the bound set is
// left at its pre-pass value. Hooks that already fired are not undone;
// a caller whose Remove or Create has external effects must treat a
// failed pass as needing its own cleanup.
func (b *Binder[K, D, E]) Apply(data []D) (join.Result[K, D, E], error) {
	res, err := join.Keyed(b.bound, data, b.keyOf)
	if err != nil {
		return join.Result[K, D, E]{}, err
	}

	if b.hooks.Remove != nil {
		for _, old := range res.Exiting {
			if err := b.hooks.Remove(old.Elem); err != nil {
				return join.Result[K, D, E]{}, fmt.Errorf("remove hook for key %v: %w", old.Key, err)
			}
		}
	}

	// Exited elements are gone for good. A key that comes back in a
	// later pass gets a brand-new element from Create, never the old one.
	next := make(map[K]join.Binding[K, D, E], len(res.Entering)+len(res.Updating))

	for _, e := range res.Entering {
		var elem E
		if b.hooks.Create != nil {
			created, err := b.hooks.Create(e.Key, e.Datum)
			if err != nil {
				return join.Result[K, D, E]{}, fmt.Errorf("create hook for key %v: %w", e.Key, err)
			}
			elem = created
		}
		next[e.Key] = join.Binding[K, D, E]{Key: e.Key, Elem: elem, Datum: e.Datum}
	}

	for _, u := range res.Updating {
		if b.hooks.Refresh != nil {
			if err := b.hooks.Refresh(u.Binding.Elem, u.Datum); err != nil {
				return join.Result[K, D, E]{}, fmt.Errorf("refresh hook for key %v: %w", u.Binding.Key, err)
			}
		}
		next[u.Binding.Key] = join.Binding[K, D, E]{Key: u.Binding.Key, Elem: u.Binding.Elem, Datum: u.Datum}
	}

	// Rebuild the bound set in new-data order. The join already
	// guaranteed unique keys, so every datum resolves to one binding.
	bound := make([]join.Binding[K, D, E], 0, len(next))
	for _, d := range data {
		bound = append(bound, next[b.keyOf(d)])
	}

	b.bound = bound
	b.pass++
	return res, nil
}

// Reset releases every bound element through the Remove hook and
// empties the bound set. It is equivalent to applying an empty snapshot.
func (b *Binder[K, D, E]) Reset() error {
	_, err := b.Apply(nil)
	return err
}

// Bound returns a copy of the current bound set in snapshot order.
func (b *Binder[K, D, E]) Bound() []join.Binding[K, D, E] {
	out := make([]join.Binding[K, D, E], len(b.bound))
	copy(out, b.bound)
	return out
}

// Len returns the number of currently bound elements.
func (b *Binder[K, D, E]) Len() int {
	return len(b.bound)
}

// Passes returns how many passes have been applied successfully.
func (b *Binder[K, D, E]) Passes() int {
	return b.pass
}
