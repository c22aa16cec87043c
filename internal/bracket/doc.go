// Package bracket implements a single-elimination tournament bracket.
//
// A Tree is built once from an ordered list of entrants. The entrant count is
// padded with BYE slots up to the next power of two and adjacent slots are
// paired layer by layer until a single final remains.
//
// # Arena Layout
//
// Nodes live in one slice addressed by index. Leaves occupy [0, size) in
// entrant order; internal nodes follow in creation order, so the node for
// match id m sits at size+m-1 and the final is always the last node. Children
// are always created before their parent, which lets propagation run as a
// single forward pass with no recursion.
//
// # Match Lifecycle
//
// Every match starts Unset and moves to exactly one terminal state:
//
//	Unset -> ByeResolved       (one side is BYE; the other side advances)
//	Unset -> ContestedResolved (explicit winner, or randomized scores)
//
// A match whose two sides are both BYE is void. It never gets a winner; its
// resolved label is BYE, so the next round treats it like a bye slot.
//
// # Rounds
//
// Round numbers are reported in play order: the first round is 1 and the
// final is Rounds(). Depth reports the distance from the final instead
// (final = 1).
//
// # Concurrency
//
// A Tree is not safe for concurrent use. RecordResult and the propagation it
// triggers form one step; callers serialize access (see internal/session).
package bracket
