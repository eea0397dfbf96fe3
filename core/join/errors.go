package join

import "fmt"

// Collection names which input collection a duplicate key was found in.
type Collection string

const (
	// CollectionData is the new data collection passed to a join.
	CollectionData Collection = "data"
	// CollectionBound is the previously bound collection passed to a join.
	CollectionBound Collection = "bound"
)

// DuplicateKeyError reports two entries of the same input collection
// resolving to the same key. The join does not produce a partial result
// when this happens; silently dropping one of the entries would corrupt
// the caller's downstream state.
type DuplicateKeyError[K comparable] struct {
	// Key is the colliding key.
	Key K

	// First and Second are the positions of the colliding entries within
	// the collection, in input order.
	First  int
	Second int

	// In identifies the collection the collision was found in. A
	// collision in CollectionBound means the caller carried a corrupt
	// bound set into this pass.
	In Collection
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("duplicate key %v in %s collection (positions %d and %d)", e.Key, e.In, e.First, e.Second)
}
