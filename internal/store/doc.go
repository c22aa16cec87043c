// Package store provides SQLite-backed durable storage for tournament sessions.
//
// The store is an append-only log with two tables:
//   - sessions: one row per bracket (entrants, seed, spec hash)
//   - results: one row per successful RecordResult call
//
// A bracket is never stored directly. It is rebuilt by replaying the results
// of a session, in seq order, against a tree built from the stored entrants
// and seed (see internal/session).
//
// # Ordering
//
// All ordering uses seq INTEGER (the session's logical clock), never
// timestamps. Result queries use ORDER BY seq ASC, id ASC COLLATE BINARY so
// replays see identical input.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
