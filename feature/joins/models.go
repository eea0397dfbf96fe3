package joins

import (
	"time"

	"datajoin/core/join"
	"datajoin/core/source"
)

// JoinRequest is the payload for a stateless join: a previously bound
// collection, a new snapshot, and the record field carrying identity.
type JoinRequest struct {
	// KeyField is the record field used as the join key. Defaults to "id".
	KeyField string `json:"key_field"`

	// Old is the previously bound collection, in binding order.
	Old []source.Record `json:"old"`

	// New is the incoming snapshot, in data order.
	New []source.Record `json:"new"`
}

// UpdatePair carries both sides of a matched key.
type UpdatePair struct {
	// Old is the previously bound record.
	Old source.Record `json:"old"`

	// New is the record that matched its key in the new snapshot.
	New source.Record `json:"new"`
}

// JoinResponse is the three-way partition of a stateless join.
type JoinResponse struct {
	// Entering holds new records with no prior binding, in snapshot order.
	Entering []source.Record `json:"entering"`

	// Updating holds old/new pairs for keys present in both collections.
	Updating []UpdatePair `json:"updating"`

	// Exiting holds old records whose keys left, in binding order.
	Exiting []source.Record `json:"exiting"`

	// Summary provides aggregate counts.
	Summary join.Summary `json:"summary"`
}

// CreateSessionRequest configures a server-held join session.
type CreateSessionRequest struct {
	// KeyField is the record field used as the join key. Defaults to "id".
	KeyField string `json:"key_field"`

	// Pull enables pull mode: passes load snapshots from the server's
	// configured source instead of request bodies.
	Pull bool `json:"pull"`
}

// PassRequest is a push-mode pass: the new snapshot for the session.
type PassRequest struct {
	// Data is the new snapshot, in data order.
	Data []source.Record `json:"data"`
}

// PassResponse reports the outcome of one session pass.
type PassResponse struct {
	// Pass is the session's pass counter after this pass.
	Pass int `json:"pass"`

	// Bound is the number of elements bound after this pass.
	Bound int `json:"bound"`

	// Plan contains the actions and summary of the pass.
	Plan join.Plan `json:"plan"`
}

// BoundEntry describes one currently bound element of a session.
type BoundEntry struct {
	// Key is the binding's join key.
	Key string `json:"key"`

	// Elem is the opaque element handle the session attached to the key.
	Elem string `json:"elem"`
}

// SessionInfo describes a join session.
type SessionInfo struct {
	// ID is the session identifier.
	ID string `json:"id"`

	// KeyField is the record field used as the join key.
	KeyField string `json:"key_field"`

	// Pull reports whether the session loads snapshots from the
	// configured source.
	Pull bool `json:"pull"`

	// Passes is the number of passes applied so far.
	Passes int `json:"passes"`

	// Bound is the current bound set, in snapshot order.
	Bound []BoundEntry `json:"bound"`

	// Created is when the session was created.
	Created time.Time `json:"created"`
}
