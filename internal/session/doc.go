// Package session owns one bracket for the lifetime of a tournament.
//
// A Session wraps a bracket.Tree with the things the tree itself leaves to its
// caller: serialization of mutations, a seeded random source, a logical clock
// and an optional store.
//
// SINGLE WRITER:
// Every call on a Session takes its mutex, so RecordResult and the
// propagation it triggers are never observed half-done. Queries take the same
// mutex and see either the state before or after a result, never a mix.
//
// DETERMINISTIC REPLAY:
// The session persists its seed and every result request (match id and the
// winner argument as given). Resume rebuilds the tree from the entrants and
// seed, re-issues the requests in seq order and checks each outcome against
// the stored one. A randomized result replays to the same scores because the
// seeded source is consumed in the same order.
//
// Ordering uses the session's logical clock (Clock.Next), never wall time.
package session
