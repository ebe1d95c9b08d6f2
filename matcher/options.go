// Package matcher implements §4.7: the backtracking interpreter that
// runs a compiled Program against an instruction array.
//
// The spec describes the runner as an explicit chain of match states,
// each owning a stack of quantifier-match snapshots, with group states
// additionally owning a stack of child states and a queue of alternation
// entry points (§4.7's "State" paragraph). This implementation realizes
// the same left-to-right, depth-first try-then-backtrack semantics with
// Go's native call stack instead: each check is matched through a
// continuation ("what to try once this check is satisfied"), and
// backtracking is simply the continuation returning false, which is
// exactly the iterative description's "retry the next child"/"dequeue
// the next alternation entry point" collapsed into recursion. Groups and
// simple atoms share one quantifier-repetition routine (repeatGeneric)
// parameterized over how to attempt "one more iteration", since both
// "match group body once" and "match this opcode once" are the same
// shape of operation from the quantifier loop's point of view.
package matcher

// Options is the runtime bitmask of §6.2.
type Options uint8

const (
	None Options = 0
	// SearchBoundaries makes ^ and $ align to the configured start/end
	// positions instead of 0/len(instructions).
	SearchBoundaries Options = 1 << (iota - 1)
	// SwapGreedy inverts every quantifier's greediness for this run,
	// without recompiling the pattern.
	SwapGreedy
)

// Has reports whether flag is set in o.
func (o Options) Has(flag Options) bool { return o&flag != 0 }
