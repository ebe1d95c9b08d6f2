package ilregex

import (
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/internal/errs"
	"github.com/ilrx/ilregex/matcher"
	"github.com/ilrx/ilregex/operand"
)

// Group is a read-only view over one captured instruction range (§3
// "ILGroup", §4.8). The zero value is the "empty group" §4.8 requires
// unsuccessful lookups to return instead of erroring.
type Group struct {
	Start, End int
	Name       string
	Matched    bool
}

// Length returns the number of instructions the group spans, 0 if the
// group never matched.
func (g Group) Length() int {
	if !g.Matched {
		return 0
	}
	return g.End - g.Start
}

// OperandView is a read-only view over one captured instruction operand
// (§4.8/§4.9). The zero value is the "empty operand" of §4.8.
type OperandView struct {
	value   cil.Operand
	name    string
	matched bool
}

// Matched reports whether this operand slot was actually captured.
func (o OperandView) Matched() bool { return o.matched }

// Name returns the capture name, or "" for an anonymous capture.
func (o OperandView) Name() string { return o.name }

// Value returns the raw captured operand, Nil if unmatched.
func (o OperandView) Value() cil.Operand { return o.value }

// Int32 returns the captured operand as an int32, panicking with a
// *TypeCastError if it was captured as a different kind (§7: "a fatal
// programming error"). Callers uncertain of the captured kind should
// inspect Value().Kind() first, or use cil.Operand's own bool-returning
// accessors via Value() directly.
func (o OperandView) Int32() int32 { return mustInt32(o.value) }

// Int64 returns the captured operand as an int64, with the same
// fatal-on-mismatch contract as Int32.
func (o OperandView) Int64() int64 { return mustInt64(o.value) }

// Str returns the captured operand as a string, with the same
// fatal-on-mismatch contract as Int32.
func (o OperandView) Str() string { return mustStr(o.value) }

// FullyQualifiedName returns a reference operand's fully-qualified name
// (field/method/type/callsite), with the same fatal-on-mismatch contract
// as Int32.
func (o OperandView) FullyQualifiedName() string { return mustFQN(o.value) }

func mustInt32(v cil.Operand) int32 {
	r, ok := v.Int32()
	if !ok {
		panic(&errs.TypeCastError{Want: "int32", Got: kindName(v.Kind())})
	}
	return r
}

func mustInt64(v cil.Operand) int64 {
	r, ok := v.Int64()
	if !ok {
		panic(&errs.TypeCastError{Want: "int64", Got: kindName(v.Kind())})
	}
	return r
}

func mustStr(v cil.Operand) string {
	r, ok := v.Str()
	if !ok {
		panic(&errs.TypeCastError{Want: "string", Got: kindName(v.Kind())})
	}
	return r
}

func mustFQN(v cil.Operand) string {
	r, ok := v.FullyQualifiedName()
	if !ok {
		panic(&errs.TypeCastError{Want: "member reference", Got: kindName(v.Kind())})
	}
	return r
}

func kindName(k cil.Kind) string {
	switch k {
	case cil.KindNone:
		return "none"
	case cil.KindInt32:
		return "int32"
	case cil.KindInt64:
		return "int64"
	case cil.KindInt8:
		return "int8"
	case cil.KindUInt8:
		return "uint8"
	case cil.KindFloat32:
		return "float32"
	case cil.KindFloat64:
		return "float64"
	case cil.KindString:
		return "string"
	case cil.KindParam:
		return "param"
	case cil.KindVariable:
		return "variable"
	case cil.KindField:
		return "field"
	case cil.KindMethod:
		return "method"
	case cil.KindType:
		return "type"
	case cil.KindCallSite:
		return "callsite"
	case cil.KindInstruction:
		return "instruction"
	case cil.KindInstructionArray:
		return "instruction-array"
	default:
		return "?"
	}
}

// MatchResult is the immutable, read-only result of one match attempt
// (§3 "MatchResult"). It borrows the instruction array by reference and
// holds a reference to the Regex sufficient to resume with NextMatch.
type MatchResult struct {
	regex        *Regex
	instructions []cil.Instruction
	method       cil.Method
	dict         *operand.Dictionary
	result       *matcher.Result
}

// Success reports whether the match attempt succeeded.
func (m *MatchResult) Success() bool { return m.result.Success }

// Index returns the instruction position the match started at.
func (m *MatchResult) Index() int { return m.result.Index }

// End returns the instruction position just past the match.
func (m *MatchResult) End() int { return m.result.End }

// Length returns End - Index, 0 for an unsuccessful match.
func (m *MatchResult) Length() int { return m.result.Length() }

// Count returns the number of capture-group slots, including the
// synthetic whole-match group at index 0.
func (m *MatchResult) Count() int { return len(m.result.Groups) }

// Group returns the capture at index i, or the empty Group if i is out
// of range or the match was unsuccessful.
func (m *MatchResult) Group(i int) Group {
	if !m.result.Success || i < 0 || i >= len(m.result.Groups) {
		return Group{}
	}
	g := m.result.Groups[i]
	return Group{Start: g.Start, End: g.End, Name: g.Name, Matched: g.Matched}
}

// GroupByName returns the named capture, or the empty Group if no group
// of that name exists or the match was unsuccessful.
func (m *MatchResult) GroupByName(name string) Group {
	if !m.result.Success {
		return Group{}
	}
	idx, ok := m.regex.pattern.program.GroupNames[name]
	if !ok {
		return Group{}
	}
	return m.Group(idx)
}

// OperandCount returns the number of operand-capture slots.
func (m *MatchResult) OperandCount() int { return len(m.result.Operands) }

// Operand returns the operand captured at index i, or the empty
// OperandView if i is out of range or the match was unsuccessful.
func (m *MatchResult) Operand(i int) OperandView {
	if !m.result.Success || i < 0 || i >= len(m.result.Operands) {
		return OperandView{}
	}
	o := m.result.Operands[i]
	return OperandView{value: o.Value, name: o.Name, matched: o.Matched}
}

// OperandByName returns the named operand capture, or the empty
// OperandView if no such capture exists or the match was unsuccessful.
func (m *MatchResult) OperandByName(name string) OperandView {
	if !m.result.Success {
		return OperandView{}
	}
	idx, ok := m.regex.pattern.program.OperandNames[name]
	if !ok {
		return OperandView{}
	}
	return m.Operand(idx)
}

// OperandNames returns every named operand capture in this pattern, for
// operand.Dictionary.AddMatch's bulk import (§6.2 `add_match`).
func (m *MatchResult) OperandNames() []string {
	names := make([]string, 0, len(m.regex.pattern.program.OperandNames))
	for name := range m.regex.pattern.program.OperandNames {
		names = append(names, name)
	}
	return names
}

// NamedOperand satisfies operand.NamedOperands for AddMatch.
func (m *MatchResult) NamedOperand(name string) (cil.Operand, bool) {
	if !m.result.Success {
		return cil.Nil, false
	}
	idx, ok := m.regex.pattern.program.OperandNames[name]
	if !ok || !m.result.Operands[idx].Matched {
		return cil.Nil, false
	}
	return m.result.Operands[idx].Value, true
}

// NextMatch retries matching with the same pattern, starting at this
// match's End (advanced by one instruction if this match was
// zero-length, so an unbounded loop of next_match calls always
// terminates), per §6.2 `MatchResult::next_match([end])`.
func (m *MatchResult) NextMatch(opts ...MatchOption) (*MatchResult, error) {
	if !m.result.Success {
		return nil, &errs.UsageError{Kind: errs.NilRequired, Message: "NextMatch called on an unsuccessful MatchResult"}
	}

	start := m.result.End
	if start == m.result.Index {
		start++
	}

	cfg := &matchConfig{method: m.method, dict: m.dict, start: start, end: len(m.instructions), hasStart: true, hasEnd: true}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.start > cfg.end {
		return &MatchResult{regex: m.regex, instructions: m.instructions, method: cfg.method, dict: cfg.dict, result: &matcher.Result{Success: false}}, nil
	}

	res, err := matcher.Run(m.regex.pattern.program, m.instructions, cfg.method, cfg.dict, cfg.start, cfg.end, m.regex.opts)
	if err != nil {
		return nil, err
	}
	return &MatchResult{regex: m.regex, instructions: m.instructions, method: cfg.method, dict: cfg.dict, result: res}, nil
}
