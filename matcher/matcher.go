package matcher

import (
	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/compiler"
	"github.com/ilrx/ilregex/internal/errs"
	"github.com/ilrx/ilregex/operand"
)

// cont is the continuation a check is given: "resume matching from
// here, with this position and these capture snapshots, and tell me
// whether the rest of the pattern (and everything after it, up to the
// top-level caller) was satisfiable." Returning false asks the check
// that invoked it to try a different way of satisfying itself (another
// quantifier count, another alternative), i.e. backtrack.
type cont func(pos int, groups []Group, operands []OperandCapture) bool

// iterFunc attempts exactly one more repetition of a quantified check
// (an atom test, or one full pass through a group's body) starting at
// pos, invoking k with the resulting state on success. Both atoms and
// groups are driven through repeatGeneric via this same shape.
type iterFunc func(pos int, groups []Group, operands []OperandCapture, k cont) bool

// thread holds everything a single Run invocation needs; it is not
// shared across goroutines (§5: "a runner... is not safe to share
// across threads").
type thread struct {
	prog   *compiler.Program
	instr  []cil.Instruction
	method cil.Method
	dict   *operand.Dictionary

	searchStart, searchEnd int // configured match range (§4.7)
	fullLen                int // len(instr), for default (non-SearchBoundaries) anchors
	opts                   Options
}

// Run executes prog against instructions between start and end (§4.7's
// outer driver): for each candidate start position in [start, end], it
// attempts a full match, returning the first success; if none succeeds
// it returns an unsuccessful Result.
func Run(prog *compiler.Program, instructions []cil.Instruction, method cil.Method, dict *operand.Dictionary, start, end int, opts Options) (*Result, error) {
	if start < 0 || end > len(instructions) || start > end {
		return nil, &errs.UsageError{Kind: errs.OutOfRange, Message: "start/end out of bounds for instruction array"}
	}

	m := &thread{
		prog:        prog,
		instr:       instructions,
		method:      method,
		dict:        dict,
		searchStart: start,
		searchEnd:   end,
		fullLen:     len(instructions),
		opts:        opts,
	}

	for i := start; i <= end; i++ {
		if res, ok := m.attempt(i); ok {
			return res, nil
		}
	}
	return &Result{Success: false}, nil
}

// attempt tries a full match of the program starting at instruction
// position i.
func (m *thread) attempt(i int) (*Result, bool) {
	groups := make([]Group, m.prog.GroupCount)
	operands := make([]OperandCapture, m.prog.OperandCount)

	var endPos int
	var finalGroups []Group
	var finalOperands []OperandCapture

	ok := m.matchFrom(1, i, groups, operands, func(pos int, g []Group, o []OperandCapture) bool {
		endPos, finalGroups, finalOperands = pos, g, o
		return true
	})
	if !ok {
		return nil, false
	}

	return &Result{
		Success:  true,
		Index:    i,
		End:      endPos,
		Groups:   finalGroups,
		Operands: finalOperands,
	}, true
}

// matchFrom matches the check at pc and, on success, resumes at
// whatever comes next: pc+1 for a simple atom, or past the matching
// GroupEnd for a GroupStart. Reaching an Alternative or GroupEnd check
// directly (as opposed to jumping over one) means the body of the
// enclosing group iteration just ran out of checks to match, which is
// exactly "this branch is done" — control is handed to k immediately.
func (m *thread) matchFrom(pc, pos int, groups []Group, operands []OperandCapture, k cont) bool {
	c := m.prog.Checks[pc]

	switch c.Kind {
	case check.KindAlternative, check.KindGroupEnd:
		return k(pos, groups, operands)

	case check.KindGroupStart:
		greedy := effectiveGreedy(c.Quantifier, m.opts)
		nextPC := c.Other + 1
		return m.repeatGeneric(m.groupIter(pc), c.Quantifier, greedy, pos, groups, operands,
			func(p2 int, g2 []Group, o2 []OperandCapture) bool {
				return m.continueFrom(nextPC, p2, g2, o2, k)
			})

	default:
		greedy := effectiveGreedy(c.Quantifier, m.opts)
		nextPC := pc + 1
		return m.repeatGeneric(m.atomIter(c), c.Quantifier, greedy, pos, groups, operands,
			func(p2 int, g2 []Group, o2 []OperandCapture) bool {
				return m.continueFrom(nextPC, p2, g2, o2, k)
			})
	}
}

// continueFrom resumes matching at nextPC, or — if nextPC has run past
// the end of the program (only possible when pc was the synthetic outer
// group) — hands off to k directly.
func (m *thread) continueFrom(nextPC, pos int, groups []Group, operands []OperandCapture, k cont) bool {
	if nextPC >= len(m.prog.Checks) {
		return k(pos, groups, operands)
	}
	return m.matchFrom(nextPC, pos, groups, operands, k)
}

func effectiveGreedy(q check.Quantifier, opts Options) bool {
	g := q.EffectiveGreedy()
	if opts.Has(SwapGreedy) {
		g = !g
	}
	return g
}

// repeatGeneric drives the quantifier loop for the check described by q,
// per §4.7's greedy/lazy rules, using iter to attempt one more
// repetition. It is shared by atoms and groups: a group's "repetition"
// is one full (possibly alternating, possibly backtracking) pass through
// its body.
func (m *thread) repeatGeneric(iter iterFunc, q check.Quantifier, greedy bool, pos int, groups []Group, operands []OperandCapture, k cont) bool {
	return m.repeatN(iter, q, greedy, 0, pos, groups, operands, k)
}

func (m *thread) repeatN(iter iterFunc, q check.Quantifier, greedy bool, count int, pos int, groups []Group, operands []OperandCapture, k cont) bool {
	tryMore := func() bool {
		if count >= q.Max {
			return false
		}
		return iter(pos, groups, operands, func(newPos int, newGroups []Group, newOperands []OperandCapture) bool {
			newCount := count + 1
			// A zero-width iteration that has already satisfied min can
			// never make progress again; refusing to expand further
			// here is what keeps `<nop>*`-style patterns from looping
			// forever instead of falling through to the stop branch.
			if newPos == pos && newCount > q.Min {
				return false
			}
			return m.repeatN(iter, q, greedy, newCount, newPos, newGroups, newOperands, k)
		})
	}
	tryStop := func() bool {
		if count < q.Min {
			return false
		}
		return k(pos, groups, operands)
	}

	if greedy {
		if tryMore() {
			return true
		}
		return tryStop()
	}
	if tryStop() {
		return true
	}
	return tryMore()
}

// groupIter returns the iterFunc for the group whose GroupStart is at
// gpc: try the group's own content first, then each Alternative entry
// point in turn (§4.7's "Group matching"/"Group backtracking"), and on
// whichever branch ultimately succeeds, record the group's own capture
// (§4.7 step 4) before handing off to k.
func (m *thread) groupIter(gpc int) iterFunc {
	g := m.prog.Checks[gpc]

	entries := make([]int, 0, len(g.Alternatives)+1)
	entries = append(entries, gpc+1)
	for _, alt := range g.Alternatives {
		entries = append(entries, alt+1)
	}

	return func(pos int, groups []Group, operands []OperandCapture, k cont) bool {
		for _, entry := range entries {
			ok := m.matchFrom(entry, pos, groups, operands, func(endPos int, g2 []Group, o2 []OperandCapture) bool {
				if !g.Capturing {
					return k(endPos, g2, o2)
				}
				g3 := cloneGroups(g2)
				g3[g.CaptureIndex] = Group{Start: pos, End: endPos, Name: g.Name, Matched: true}
				return k(endPos, g3, o2)
			})
			if ok {
				return true
			}
		}
		return false
	}
}

// atomIter returns the iterFunc for a single non-group check.
func (m *thread) atomIter(c *check.Check) iterFunc {
	return func(pos int, groups []Group, operands []OperandCapture, k cont) bool {
		newPos, newGroups, newOperands, ok := m.testAtom(c, pos, groups, operands)
		if !ok {
			return false
		}
		return k(newPos, newGroups, newOperands)
	}
}

// testAtom attempts a single (non-repeated) match of a non-group check
// at pos, per §4.7's "Atom matching".
func (m *thread) testAtom(c *check.Check, pos int, groups []Group, operands []OperandCapture) (int, []Group, []OperandCapture, bool) {
	switch c.Kind {
	case check.KindStart:
		boundary := 0
		if m.opts.Has(SearchBoundaries) {
			boundary = m.searchStart
		}
		if pos != boundary {
			return 0, nil, nil, false
		}
		return pos, groups, operands, true

	case check.KindEnd:
		boundary := m.fullLen
		if m.opts.Has(SearchBoundaries) {
			boundary = m.searchEnd
		}
		if pos != boundary {
			return 0, nil, nil, false
		}
		return pos, groups, operands, true

	case check.KindNoOp:
		return pos, groups, operands, true

	case check.KindAny:
		if pos >= m.searchEnd {
			return 0, nil, nil, false
		}
		return pos + 1, groups, operands, true

	case check.KindOpCode:
		if pos >= m.searchEnd || !cil.EqualInstruction(m.instr[pos], c.Matcher, cil.Nil, m.method) {
			return 0, nil, nil, false
		}
		return pos + 1, groups, operands, true

	case check.KindOpCodeOperand:
		if pos >= m.searchEnd || !cil.EqualInstruction(m.instr[pos], c.Matcher, c.Literal, m.method) {
			return 0, nil, nil, false
		}
		return pos + 1, groups, operands, true

	case check.KindCaptureOperand:
		if pos >= m.searchEnd {
			return 0, nil, nil, false
		}
		instr := m.instr[pos]
		if !c.Matcher.Matches(instr.OpCode()) {
			return 0, nil, nil, false
		}
		val := cil.CaptureValue(instr, c.Matcher, m.method)
		newOperands := cloneOperands(operands)
		newOperands[c.CaptureIndex] = OperandCapture{Value: val, Name: c.CaptureName, Matched: true}
		return pos + 1, groups, newOperands, true

	case check.KindEqualsOperand:
		if pos >= m.searchEnd {
			return 0, nil, nil, false
		}
		instr := m.instr[pos]
		if !c.Matcher.Matches(instr.OpCode()) {
			return 0, nil, nil, false
		}
		expected, ok := m.resolveRef(c.EqualsRef, operands)
		if !ok {
			return 0, nil, nil, false
		}
		actual := cil.CaptureValue(instr, c.Matcher, m.method)
		if !cil.EqualOperands(c.Matcher, actual, expected) {
			return 0, nil, nil, false
		}
		return pos + 1, groups, operands, true

	case check.KindMemberName:
		if pos >= m.searchEnd {
			return 0, nil, nil, false
		}
		instr := m.instr[pos]
		if !c.Matcher.Matches(instr.OpCode()) {
			return 0, nil, nil, false
		}
		op := instr.Operand()
		kind, ok := op.MemberKind()
		if !ok || kind != c.MemberKind {
			return 0, nil, nil, false
		}
		name, _ := op.FullyQualifiedName()
		if !c.Member.MatchString(name) {
			return 0, nil, nil, false
		}
		return pos + 1, groups, operands, true

	default:
		return 0, nil, nil, false
	}
}

// resolveRef resolves an EqualsOperand backreference (§4.1/§4.3): a
// digit-only index names a prior CaptureOperand's numeric index
// directly; a name resolves against this pattern's own named captures
// first (if one has matched so far) and falls back to the caller's
// OperandDictionary, per §4.9 ("Consumed by EqualsOperand when the name
// is not bound by an earlier in-pattern capture").
func (m *thread) resolveRef(ref check.Ref, operands []OperandCapture) (cil.Operand, bool) {
	if ref.ByIndex {
		if ref.Index < 0 || ref.Index >= len(operands) || !operands[ref.Index].Matched {
			return cil.Nil, false
		}
		return operands[ref.Index].Value, true
	}

	if idx, ok := m.prog.OperandNames[ref.Name]; ok && operands[idx].Matched {
		return operands[idx].Value, true
	}
	if m.dict != nil {
		if v, ok := m.dict.Get(ref.Name); ok {
			return v, true
		}
	}
	return cil.Nil, false
}

func cloneGroups(g []Group) []Group {
	out := make([]Group, len(g))
	copy(out, g)
	return out
}

func cloneOperands(o []OperandCapture) []OperandCapture {
	out := make([]OperandCapture, len(o))
	copy(out, o)
	return out
}
