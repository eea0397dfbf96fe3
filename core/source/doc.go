// Package source supplies data snapshots for join passes.
//
// A Source abstracts where a snapshot comes from: a JSON file on disk,
// a JSON object in bucket storage, or a SQL query. All of them yield
// the same loosely typed Record slices, so the join layer never cares
// about the transport.
//
// # Keys
//
// Snapshots are joined by a record field named in configuration;
// KeyField turns that field name into the key function the join
// expects, coercing numeric identifiers to stable strings.
//
// # Caching
//
// Cache provides TTL-based snapshot caching with singleflight stampede
// protection for deployments where many concurrent join sessions pull
// from the same source.
package source
