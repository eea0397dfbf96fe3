package join

// Keyed computes the three-way partition between a previously bound
// collection and a new data collection, correlating entries by the key
// returned from keyOf.
//
// The pass is pure: it creates and destroys nothing, holds no state
// between calls, and only routes bindings and data items into the
// Result partitions. Attaching or releasing the opaque element handles
// is the caller's job, once per entry in the respective partition.
//
// Keys must be unique within each input collection. A collision returns
// a *DuplicateKeyError identifying the key and both positions, and no
// partial Result. A panic raised by keyOf propagates unmodified; key
// derivation is expected to be a pure, always-succeeding computation,
// and a failure there is a caller bug.
//
// Cost is O(n+m) time and space for n old bindings and m data items.
// Callers typically re-join on every refresh tick, so the single index
// map built here is the only transient allocation beyond the output.
func Keyed[K comparable, D, E any](old []Binding[K, D, E], data []D, keyOf func(D) K) (Result[K, D, E], error) {
	var res Result[K, D, E]

	// Index the old bindings by key, rejecting duplicates. A duplicate
	// here means the caller corrupted the bound set between passes.
	index := make(map[K]int, len(old))
	for i, b := range old {
		if prev, exists := index[b.Key]; exists {
			return Result[K, D, E]{}, &DuplicateKeyError[K]{Key: b.Key, First: prev, Second: i, In: CollectionBound}
		}
		index[b.Key] = i
	}

	// Scan the new data in order. Matched bindings are consumed so that
	// a later duplicate in data is caught rather than matched twice.
	seen := make(map[K]int, len(data))
	consumed := make([]bool, len(old))
	for i, d := range data {
		k := keyOf(d)
		if prev, dup := seen[k]; dup {
			return Result[K, D, E]{}, &DuplicateKeyError[K]{Key: k, First: prev, Second: i, In: CollectionData}
		}
		seen[k] = i

		if at, bound := index[k]; bound {
			consumed[at] = true
			res.Updating = append(res.Updating, Update[K, D, E]{Binding: old[at], Datum: d})
		} else {
			res.Entering = append(res.Entering, Enter[K, D]{Key: k, Datum: d})
		}
	}

	// Everything not consumed exits, in old order.
	for i, b := range old {
		if !consumed[i] {
			res.Exiting = append(res.Exiting, b)
		}
	}

	return res, nil
}

// ByIndex joins by position instead of identity: the key of every entry
// is its index within its collection. This is the default join of the
// declarative-grammar tutorials this engine grew out of, and it carries
// different semantics than Keyed: when the collections differ in size,
// items at shifted positions are reclassified as different keys, not
// tracked identities. Only the size delta enters or exits.
//
// The old bindings must carry their positional keys (0..len-1) from the
// previous pass; ByIndex rejects duplicated keys in the bound set the
// same way Keyed does, since a hand-edited bound set can violate it.
func ByIndex[D, E any](old []Binding[int, D, E], data []D) (Result[int, D, E], error) {
	var res Result[int, D, E]

	index := make(map[int]int, len(old))
	for i, b := range old {
		if prev, exists := index[b.Key]; exists {
			return Result[int, D, E]{}, &DuplicateKeyError[int]{Key: b.Key, First: prev, Second: i, In: CollectionBound}
		}
		index[b.Key] = i
	}

	consumed := make([]bool, len(old))
	for i, d := range data {
		if at, bound := index[i]; bound {
			consumed[at] = true
			res.Updating = append(res.Updating, Update[int, D, E]{Binding: old[at], Datum: d})
		} else {
			res.Entering = append(res.Entering, Enter[int, D]{Key: i, Datum: d})
		}
	}

	for i, b := range old {
		if !consumed[i] {
			res.Exiting = append(res.Exiting, b)
		}
	}

	return res, nil
}
