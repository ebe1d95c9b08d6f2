package ilregex

import "github.com/ilrx/ilregex/internal/errs"

// ParseError reports a malformed DSL pattern (§7). Kind narrows the
// failure to lexical, grammatical, or semantic.
type ParseError = errs.ParseError

// ParseKind classifies a ParseError.
type ParseKind = errs.ParseKind

const (
	Lexical     = errs.Lexical
	Grammatical = errs.Grammatical
	Semantic    = errs.Semantic
)

// CompileError reports a structurally well-formed pattern that cannot
// form a compiled program (§7): an unbalanced group, a dangling
// quantifier, or a quantifier attached to a non-quantifiable atom.
type CompileError = errs.CompileError

// CompileKind classifies a CompileError.
type CompileKind = errs.CompileKind

const (
	UnbalancedGroup      = errs.UnbalancedGroup
	DanglingQuantifier   = errs.DanglingQuantifier
	QuantifierNotAllowed = errs.QuantifierNotAllowed
)

// UsageError reports invalid caller-supplied arguments (§7): an
// out-of-bounds start/end, a required nil parameter, or an unknown name
// looked up in an OperandDictionary.
type UsageError = errs.UsageError

// UsageKind classifies a UsageError.
type UsageKind = errs.UsageKind

const (
	OutOfRange  = errs.OutOfRange
	NilRequired = errs.NilRequired
	UnknownName = errs.UnknownName
)

// TypeCastError reports a MatchResult typed-operand accessor requesting
// a kind other than the one actually captured (§7).
type TypeCastError = errs.TypeCastError
