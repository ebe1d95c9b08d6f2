// Package compiler implements §4.6: it flattens an immutable dsl.Pattern
// into an indexed Program whose group starts/ends carry resolved links,
// whose captures are numbered, and whose empty groups/alternatives are
// filled with a no-op so the matcher always has something to step
// through.
//
// Grounded on regex/preprocessor.go's tree-walk-with-pending-stack shape
// (newPreprocessor → stdPattern/fallbackPattern's single walk over a
// subPattern), adapted from "rewrite AST into engine-specific text" to
// "flatten Pattern into an indexed Program with resolved group links".
package compiler

import (
	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/dsl"
	"github.com/ilrx/ilregex/internal/errs"
)

// Program is the flat, compiled form of a Pattern (§3 "Compiled
// program"). Checks[0] is always a sentinel no-op; Checks[1] is always
// the synthetic outer capturing group wrapping every user check, so
// GroupCount is always at least 1 and group index 0 is always "the
// whole match".
type Program struct {
	Checks       []*check.Check
	GroupCount   int
	OperandCount int
	GroupNames   map[string]int // named capturing group -> capture index
	OperandNames map[string]int // named CaptureOperand -> operand index
}

// scope tracks the bookkeeping needed for one currently-open group: the
// program index of its GroupStart, the alternation entry points seen so
// far inside it, and whether anything has been emitted since the most
// recent boundary (the GroupStart itself, or the last Alternative),
// which is how empty-group/empty-alternative filling (§4.6) is detected.
type scope struct {
	startIndex int
	alts       []int
	empty      bool
}

// Compile flattens p into a Program, per §4.6.
func Compile(p *dsl.Pattern) (*Program, error) {
	c := &compiling{
		groupNames:   map[string]int{},
		operandNames: map[string]int{},
	}
	return c.run(p.Checks())
}

type compiling struct {
	prog         []*check.Check
	scopes       []*scope
	groupCounter int // next capturing-group index to assign; 0 is reserved for the outer group
	operandCtr   int
	groupNames   map[string]int
	operandNames map[string]int
}

func (c *compiling) run(checks []*check.Check) (*Program, error) {
	// Checks[0]: sentinel no-op.
	c.prog = append(c.prog, check.New(check.KindNoOp))

	// Checks[1]: synthetic outer capturing group (group index 0).
	outer := check.New(check.KindGroupStart)
	outer.Capturing = true
	outer.CaptureIndex = 0
	c.groupCounter = 1
	outerIdx := len(c.prog)
	c.prog = append(c.prog, outer)
	c.scopes = append(c.scopes, &scope{startIndex: outerIdx, empty: true})

	for _, src := range checks {
		if err := c.step(src); err != nil {
			return nil, err
		}
	}

	if len(c.scopes) != 1 {
		return nil, &errs.CompileError{
			Kind:    errs.UnbalancedGroup,
			Message: "unclosed group: missing ')'",
		}
	}

	// Close the synthetic outer group, filling it if empty.
	top := c.scopes[0]
	if top.empty {
		c.prog = append(c.prog, check.New(check.KindNoOp))
	}
	endIdx := len(c.prog)
	end := check.New(check.KindGroupEnd)
	end.Other = top.startIndex
	end.Alternatives = top.alts
	c.prog = append(c.prog, end)

	start := c.prog[top.startIndex]
	start.Other = endIdx
	start.Alternatives = top.alts

	return &Program{
		Checks:       c.prog,
		GroupCount:   c.groupCounter,
		OperandCount: c.operandCtr,
		GroupNames:   c.groupNames,
		OperandNames: c.operandNames,
	}, nil
}

func (c *compiling) top() *scope { return c.scopes[len(c.scopes)-1] }

func (c *compiling) step(src *check.Check) error {
	switch src.Kind {
	case check.KindGroupStart:
		return c.openGroup(src)
	case check.KindGroupEnd:
		return c.closeGroup(src)
	case check.KindAlternative:
		c.fillIfEmpty()
		idx := len(c.prog)
		c.prog = append(c.prog, src.Clone())
		c.top().alts = append(c.top().alts, idx)
		c.top().empty = true
		return nil
	case check.KindCaptureOperand:
		cp := src.Clone()
		cp.CaptureIndex = c.operandCtr
		c.operandCtr++
		if cp.CaptureName != "" {
			c.operandNames[cp.CaptureName] = cp.CaptureIndex
		}
		c.prog = append(c.prog, cp)
		c.top().empty = false
		return nil
	default:
		c.prog = append(c.prog, src.Clone())
		c.top().empty = false
		return nil
	}
}

func (c *compiling) openGroup(src *check.Check) error {
	// The group itself is an atom in the enclosing scope's segment.
	if len(c.scopes) > 0 {
		c.top().empty = false
	}

	cp := src.Clone()
	if cp.Capturing {
		cp.CaptureIndex = c.groupCounter
		c.groupCounter++
		if cp.Name != "" {
			c.groupNames[cp.Name] = cp.CaptureIndex
		}
	} else {
		cp.CaptureIndex = -1
	}

	idx := len(c.prog)
	c.prog = append(c.prog, cp)
	c.scopes = append(c.scopes, &scope{startIndex: idx, empty: true})
	return nil
}

func (c *compiling) closeGroup(src *check.Check) error {
	if len(c.scopes) <= 1 {
		return &errs.CompileError{
			Kind:    errs.UnbalancedGroup,
			Message: "unmatched ')'",
		}
	}

	c.fillIfEmpty()

	top := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]

	idx := len(c.prog)
	end := src.Clone()
	end.Other = top.startIndex
	end.Alternatives = top.alts
	c.prog = append(c.prog, end)

	start := c.prog[top.startIndex]
	start.Other = idx
	start.Alternatives = top.alts
	// The quantifier a `)` token carries in the DSL attaches to the
	// GroupEnd check (the parser's fuseTarget becomes the GroupEnd, not
	// the GroupStart); the matcher drives a group's repetition from its
	// GroupStart, so propagate it across the link (§4.6: "propagate the
	// quantifier from the end to the start").
	start.Quantifier = end.Quantifier

	// The now-closed group is itself an atom in its parent's segment.
	c.top().empty = false
	return nil
}

// fillIfEmpty inserts a no-op into the current scope's program position
// when nothing has been emitted since the most recent boundary (the
// GroupStart, or the last Alternative), per §4.6's empty-alternative
// filling rule.
func (c *compiling) fillIfEmpty() {
	if c.top().empty {
		c.prog = append(c.prog, check.New(check.KindNoOp))
	}
}
