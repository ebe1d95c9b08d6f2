// Package ilregex is the public API of the regular-expression engine
// over typed instruction streams described by the specification: parse
// a pattern (Parse/FromFile), compile it into a Regex, and match it
// against a stream of cil.Instruction values.
//
// Grounded on regex/regex.go's top-level Compile entry point shape
// (validate → build → return an immutable value) for Parse, and on
// regex/regex.go's Engine/result-wrapper split for Regex/MatchResult.
package ilregex

import (
	"github.com/ilrx/ilregex/compiler"
	"github.com/ilrx/ilregex/dsl"
)

// Pattern is an immutable, compiled pattern (§3 "Pattern" plus §3
// "Compiled program"): the result of parsing DSL text, building it into
// an ordered check sequence, and flattening that into an indexed
// program. A Pattern carries no match-time state and may be shared
// freely across goroutines and Regex values (§5).
type Pattern struct {
	src     *dsl.Pattern
	program *compiler.Program
}

// Parse parses and compiles pattern text (§6.2 `Pattern::parse`). The
// returned error is a *ParseError for a malformed DSL, or a
// *CompileError for structurally valid checks that cannot form a
// program (an unbalanced group or a dangling quantifier).
func Parse(text string) (*Pattern, error) {
	p, err := dsl.Parse(text)
	if err != nil {
		return nil, err
	}
	return compilePattern(p)
}

// FromFile reads and parses a pattern from disk, conventionally a
// ".ilregex" file (§6.1/§6.2 `Pattern::from_file`).
func FromFile(path string) (*Pattern, error) {
	p, err := dsl.FromFile(path)
	if err != nil {
		return nil, err
	}
	return compilePattern(p)
}

func compilePattern(p *dsl.Pattern) (*Pattern, error) {
	prog, err := compiler.Compile(p)
	if err != nil {
		return nil, err
	}
	return &Pattern{src: p, program: prog}, nil
}

// String regenerates DSL text for the pattern (§8's round-trip
// invariant: Parse(p.String()) is behaviorally equivalent to p, though
// not necessarily byte-identical).
func (p *Pattern) String() string { return p.src.String() }

// GroupCount returns the number of capturing groups, including the
// synthetic outer group at index 0 (§3 "group_count").
func (p *Pattern) GroupCount() int { return p.program.GroupCount }

// OperandCount returns the number of CaptureOperand checks in the
// pattern.
func (p *Pattern) OperandCount() int { return p.program.OperandCount }

// GroupName returns the index assigned to a named capturing group.
func (p *Pattern) GroupName(name string) (int, bool) {
	i, ok := p.program.GroupNames[name]
	return i, ok
}

// OperandName returns the index assigned to a named CaptureOperand.
func (p *Pattern) OperandName(name string) (int, bool) {
	i, ok := p.program.OperandNames[name]
	return i, ok
}
