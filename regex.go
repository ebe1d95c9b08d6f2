package ilregex

import (
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/matcher"
	"github.com/ilrx/ilregex/operand"
)

// OperandDictionary is the named name -> operand mapping of §3/§4.9,
// used to seed operands a pattern's EqualsOperand checks can reference
// by name when no earlier in-pattern capture bound that name.
type OperandDictionary = operand.Dictionary

// NewOperandDictionary returns an empty OperandDictionary.
func NewOperandDictionary() *OperandDictionary { return operand.New() }

// Regex pairs a compiled Pattern with the runtime Options it always
// matches with (§6.2 `Regex::new`). Like Pattern, a Regex is immutable
// and safe to share; each Match call owns its own runner state (§5).
type Regex struct {
	pattern *Pattern
	opts    Options
}

// New builds a Regex from an already-compiled Pattern.
func New(pattern *Pattern, opts Options) *Regex {
	return &Regex{pattern: pattern, opts: opts}
}

// Compile parses pattern text and builds a Regex in one step.
func Compile(text string, opts Options) (*Regex, error) {
	p, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(p, opts), nil
}

// Pattern returns the Regex's compiled Pattern.
func (r *Regex) Pattern() *Pattern { return r.pattern }

// matchConfig collects the optional arguments to Match/NextMatch (§6.2:
// method, operand map, start, end), applied through functional options
// rather than the spec's positional-optional-argument signature, since
// Go has no optional-parameter syntax of its own.
type matchConfig struct {
	method           cil.Method
	dict             *operand.Dictionary
	start, end       int
	hasStart, hasEnd bool
}

// MatchOption configures one Match or NextMatch call.
type MatchOption func(*matchConfig)

// WithMethod supplies the enclosing method context used to resolve
// short-form argument/variable opcodes (§4.1).
func WithMethod(m cil.Method) MatchOption {
	return func(c *matchConfig) { c.method = m }
}

// WithOperands supplies a pre-seeded OperandDictionary for
// EqualsOperand backreferences that aren't bound by an earlier
// in-pattern capture (§4.9).
func WithOperands(d *OperandDictionary) MatchOption {
	return func(c *matchConfig) { c.dict = d }
}

// WithRange restricts matching to instructions[start:end] (§6.2).
func WithRange(start, end int) MatchOption {
	return func(c *matchConfig) {
		c.start, c.hasStart = start, true
		c.end, c.hasEnd = end, true
	}
}

// WithEnd restricts matching to end at the given instruction index,
// leaving start at its default (0, or — for NextMatch — just past the
// previous match). Named separately from WithRange because §6.2's
// `next_match([end])` only ever overrides the end.
func WithEnd(end int) MatchOption {
	return func(c *matchConfig) { c.end, c.hasEnd = end, true }
}

// Match runs the regex against instructions once, returning the first
// match at or after the configured start position (§6.2 `Regex::match`).
// A non-matching attempt is not an error: check MatchResult.Success.
func (r *Regex) Match(instructions []cil.Instruction, opts ...MatchOption) (*MatchResult, error) {
	cfg := &matchConfig{}
	for _, o := range opts {
		o(cfg)
	}

	start := 0
	if cfg.hasStart {
		start = cfg.start
	}
	end := len(instructions)
	if cfg.hasEnd {
		end = cfg.end
	}

	res, err := matcher.Run(r.pattern.program, instructions, cfg.method, cfg.dict, start, end, r.opts)
	if err != nil {
		return nil, err
	}
	return &MatchResult{
		regex:        r,
		instructions: instructions,
		method:       cfg.method,
		dict:         cfg.dict,
		result:       res,
	}, nil
}

// FindAll repeatedly calls NextMatch until the stream is exhausted,
// returning every successful match in order (supplemented per
// SPEC_FULL.md beyond §6.2's single next_match primitive, grounded on
// find.go's iterate-via-last-end loop shape).
func (r *Regex) FindAll(instructions []cil.Instruction, opts ...MatchOption) ([]*MatchResult, error) {
	var out []*MatchResult

	m, err := r.Match(instructions, opts...)
	if err != nil {
		return nil, err
	}
	for m.Success() {
		out = append(out, m)
		next, err := m.NextMatch()
		if err != nil {
			return nil, err
		}
		m = next
	}
	return out, nil
}
