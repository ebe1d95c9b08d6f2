// Package errs defines the three structured error kinds of spec §7
// (ParseError, CompileError, UsageError) plus TypeCastError, as a leaf
// package so both the dsl/compiler/matcher packages and the public
// ilregex package can construct and recognize them without an import
// cycle. The ilregex package re-exports each type via a type alias.
package errs

import "fmt"

// ParseKind classifies a ParseError, per §7: lexical, grammatical, or
// semantic.
type ParseKind uint8

const (
	Lexical ParseKind = iota
	Grammatical
	Semantic
)

func (k ParseKind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Grammatical:
		return "grammatical"
	case Semantic:
		return "semantic"
	default:
		return "?"
	}
}

// ParseError reports a malformed DSL pattern, with 1-based line/column
// positions per §4.3.
type ParseError struct {
	Line    int
	Column  int
	Kind    ParseKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ilregex: parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// CompileKind classifies a CompileError, per §7.
type CompileKind uint8

const (
	UnbalancedGroup CompileKind = iota
	DanglingQuantifier
	QuantifierNotAllowed
)

func (k CompileKind) String() string {
	switch k {
	case UnbalancedGroup:
		return "unbalanced-group"
	case DanglingQuantifier:
		return "dangling-quantifier"
	case QuantifierNotAllowed:
		return "quantifier-not-allowed"
	default:
		return "?"
	}
}

// CompileError reports a structurally valid check sequence that cannot
// form a compiled program, per §7.
type CompileError struct {
	Kind    CompileKind
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("ilregex: compile error (%s): %s", e.Kind, e.Message)
}

// UsageKind classifies a UsageError, per §7.
type UsageKind uint8

const (
	OutOfRange UsageKind = iota
	NilRequired
	UnknownName
)

func (k UsageKind) String() string {
	switch k {
	case OutOfRange:
		return "out-of-range"
	case NilRequired:
		return "nil-required"
	case UnknownName:
		return "unknown-name"
	default:
		return "?"
	}
}

// UsageError reports invalid caller-supplied arguments, per §7.
type UsageError struct {
	Kind    UsageKind
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("ilregex: usage error (%s): %s", e.Kind, e.Message)
}

// TypeCastError reports a MatchResult typed-operand accessor requesting a
// kind other than the one actually captured, per §7 ("a fatal programming
// error").
type TypeCastError struct {
	Want string
	Got  string
}

func (e *TypeCastError) Error() string {
	return fmt.Sprintf("ilregex: operand is %s, not %s", e.Got, e.Want)
}
