package check

import (
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/internal/member"
)

// Kind tags the variant of a Check, per spec §3.
type Kind uint8

const (
	KindStart Kind = iota
	KindEnd
	KindAny
	KindAlternative
	KindGroupStart
	KindGroupEnd
	KindOpCode
	KindOpCodeOperand
	KindCaptureOperand
	KindEqualsOperand
	KindMemberName
	// KindNoOp is a zero-width check that always succeeds without
	// consuming an instruction. Written explicitly as "<nop>" in the DSL,
	// and also what the compiler inserts to fill an empty group or
	// alternative (§4.6) so the matcher always has something to step
	// through.
	KindNoOp
	// KindQuantifier is a floating quantifier check emitted by the parser
	// before the pattern builder fuses it onto the preceding atom. It
	// never survives into a built Pattern or a compiled Program.
	KindQuantifier
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindAny:
		return "Any"
	case KindAlternative:
		return "Alternative"
	case KindGroupStart:
		return "GroupStart"
	case KindGroupEnd:
		return "GroupEnd"
	case KindOpCode:
		return "OpCode"
	case KindOpCodeOperand:
		return "OpCodeOperand"
	case KindCaptureOperand:
		return "CaptureOperand"
	case KindEqualsOperand:
		return "EqualsOperand"
	case KindMemberName:
		return "MemberName"
	case KindNoOp:
		return "NoOp"
	case KindQuantifier:
		return "Quantifier"
	default:
		return "?"
	}
}

// Ref names the target of an EqualsOperand backreference: either a
// previously captured name, or a digit-only index (§4.3: "In ceq, both
// names and digit-only indices are accepted").
type Ref struct {
	Name    string
	Index   int
	ByIndex bool
}

// Check is one atom of a pattern (§3). Not every field applies to every
// Kind; see the per-Kind comments below.
type Check struct {
	Kind       Kind
	Quantifier Quantifier // defaults to ExactlyOne; §3

	// Assigned during compile (§4.6); -1/nil before that.
	CaptureIndex int   // GroupStart's group index, or CaptureOperand's operand index
	Other        int   // GroupStart<->GroupEnd program-index link
	Alternatives []int // GroupStart/GroupEnd: indices of Alternative children inside the group

	// GroupStart only.
	Capturing bool
	Name      string // capture name; "" if anonymous

	// OpCode, OpCodeOperand, CaptureOperand, EqualsOperand, MemberName.
	Matcher cil.Matcher

	// OpCodeOperand only: the literal operand to compare against.
	Literal cil.Operand

	// CaptureOperand only: capture name; "" if anonymous (still gets a
	// numeric CaptureIndex).
	CaptureName string

	// EqualsOperand only.
	EqualsRef Ref

	// MemberName only.
	MemberKind cil.MemberKind
	Pattern    string         // pattern text as authored (§4.4)
	Member     *member.Regex // compiled by the DSL parser alongside Pattern
}

// New builds a Check of the given kind with the identity quantifier.
func New(kind Kind) *Check {
	return &Check{Kind: kind, Quantifier: ExactlyOne, CaptureIndex: -1, Other: -1}
}

// Clone returns a shallow copy of c, used by the compiler when it needs a
// fresh Check value to assign compile-time fields onto without mutating
// the caller's immutable Pattern.
func (c *Check) Clone() *Check {
	cp := *c
	if c.Alternatives != nil {
		cp.Alternatives = append([]int(nil), c.Alternatives...)
	}
	return &cp
}

// IsZeroWidth reports whether the check consumes no input instruction,
// per §4.7 ("Any consuming match advances the position by one; non-
// consuming atoms do not").
func (c *Check) IsZeroWidth() bool {
	switch c.Kind {
	case KindStart, KindEnd, KindAlternative, KindGroupStart, KindGroupEnd, KindNoOp:
		return true
	default:
		return false
	}
}

// IsQuantifiable reports whether a quantifier may attach to this check
// (§4.6: attaching to Alternative or GroupStart is a compile error;
// attaching to Start/End is allowed even though they are zero-width).
func (c *Check) IsQuantifiable() bool {
	switch c.Kind {
	case KindAlternative, KindGroupStart, KindQuantifier:
		return false
	default:
		return true
	}
}
