// Package joins exposes the join engine over HTTP.
//
// Two usage modes are offered:
//
//   - Stateless: POST /joins with an old and a new collection returns
//     the entering/updating/exiting partition in one shot. The old
//     records double as the bound elements.
//
//   - Sessions: the server holds a binder per session, so consecutive
//     passes track element identity across snapshots. Push-mode
//     sessions receive snapshots in the request body; pull-mode
//     sessions sync from the server's configured snapshot source
//     through the TTL cache.
//
// Duplicate join keys in a submitted collection are rejected with
// status 422 carrying the key and both colliding positions.
package joins
