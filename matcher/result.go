package matcher

import "github.com/ilrx/ilregex/cil"

// Group is a captured instruction range (§3 "ILGroup"). The zero value
// reports Matched == false, the "empty group" of §4.8 returned for a
// capturing group whose branch was never taken.
type Group struct {
	Start, End int
	Name       string
	Matched    bool
}

// OperandCapture is a captured instruction operand (§3). The zero value
// is the "empty operand" of §4.8.
type OperandCapture struct {
	Value   cil.Operand
	Name    string
	Matched bool
}

// Result is the raw output of Run (§3 "MatchResult"), before the root
// package wraps it with its public, read-only accessor surface.
type Result struct {
	Success  bool
	Index    int
	End      int
	Groups   []Group
	Operands []OperandCapture
}

// Length reports the matched instruction count; 0 for a failed match.
func (r *Result) Length() int {
	if !r.Success {
		return 0
	}
	return r.End - r.Index
}
