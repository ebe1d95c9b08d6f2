package ilregex

import "github.com/ilrx/ilregex/matcher"

// Options is the runtime bitmask of §6.2, mirroring the teacher's own
// bit-flag style for threading match-time behavior through Compile
// (syntax/constants.go's FlagIgnoreCase/FlagMultiline/...), reduced to
// the two flags this engine defines.
type Options = matcher.Options

const (
	// None runs with default anchor/greediness semantics.
	None Options = matcher.None
	// SearchBoundaries makes ^ and $ align to the match call's start/end
	// instead of 0/len(instructions).
	SearchBoundaries Options = matcher.SearchBoundaries
	// SwapGreedy inverts every quantifier's greediness without
	// recompiling the pattern.
	SwapGreedy Options = matcher.SwapGreedy
)
