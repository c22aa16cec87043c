// Package ir holds the record types shared by the session log, the CLI and
// the conformance harness, plus the canonical JSON and content hashing used
// to identify them.
//
// ir imports nothing internal. Every other internal package may import it.
//
// Key constraints:
//   - No float types; numbers are int or int64
//   - JSON tags use snake_case
//   - Ordering uses the logical clock (seq), never wall-clock time
package ir
