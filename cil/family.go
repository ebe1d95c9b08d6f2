package cil

import (
	"sort"
	"strings"
)

// Matcher is an OpCodeMatcher per §3: either a single concrete opcode or a
// family recognizing several logically-equivalent opcodes.
type Matcher interface {
	// Matches reports whether op belongs to this matcher.
	Matches(op OpCode) bool
	// String returns the matcher's DSL spelling (a bare opcode name, or a
	// "%name" family reference, or "any").
	String() string
}

// Concrete is a Matcher wrapping exactly one opcode.
type Concrete OpCode

func (c Concrete) Matches(op OpCode) bool { return OpCode(c) == op }
func (c Concrete) String() string         { return OpCode(c).String() }

// Semantic tags what implicit operand a family's short forms carry, so
// the matcher can synthesize it when comparing against a literal or
// capturing it (§4.1's "the operand is synthesized" rule).
type Semantic uint8

const (
	SemanticNone Semantic = iota
	SemanticInt32
	SemanticParam
	SemanticVariable
)

// Family is a named multi-opcode family (§3).
type Family struct {
	Name     string
	Semantic Semantic
	member   map[OpCode]bool
}

func (f *Family) Matches(op OpCode) bool { return f.member[op] }
func (f *Family) String() string         { return "%" + f.Name }

func newFamily(name string, sem Semantic, ops ...OpCode) *Family {
	m := make(map[OpCode]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return &Family{Name: name, Semantic: sem, member: m}
}

// anyMatcher is the special family matching every opcode (§3).
type anyMatcher struct{}

func (anyMatcher) Matches(OpCode) bool { return true }
func (anyMatcher) String() string      { return "any" }

// Any is the universal matcher.
var Any Matcher = anyMatcher{}

// builtin is the closed table of built-in multi-opcode families. It is
// seeded once and not modified afterwards; families added at runtime by
// cil/families (the Starlark-scripted extension point) go into custom.
// Families/FamilyByName look up both the built-in and any registered
// custom entries.
var builtin = map[string]*Family{
	"ldarg": newFamily("ldarg", SemanticParam,
		Ldarg0, Ldarg1, Ldarg2, Ldarg3, LdargS, Ldarg),
	"starg": newFamily("starg", SemanticParam,
		StargS, Starg),
	"ldloc": newFamily("ldloc", SemanticVariable,
		Ldloc0, Ldloc1, Ldloc2, Ldloc3, LdlocS, Ldloc),
	"stloc": newFamily("stloc", SemanticVariable,
		Stloc0, Stloc1, Stloc2, Stloc3, StlocS, Stloc),
	"ldc.i4": newFamily("ldc.i4", SemanticInt32,
		LdcI40, LdcI41, LdcI42, LdcI43, LdcI44, LdcI45, LdcI46, LdcI47, LdcI48, LdcI4S, LdcI4),
	"ldc": newFamily("ldc", SemanticNone,
		LdcI40, LdcI41, LdcI42, LdcI43, LdcI44, LdcI45, LdcI46, LdcI47, LdcI48, LdcI4S, LdcI4,
		LdcI8, LdcR4, LdcR8),
	"ldfld": newFamily("ldfld", SemanticNone,
		Ldfld, Ldsfld, Ldflda, Ldsflda),
	"call": newFamily("call", SemanticNone,
		Call, Callvirt, Calli, Newobj),
	"br": newFamily("br", SemanticNone,
		Br, BrS, Leave, LeaveS),
	"brbool": newFamily("brbool", SemanticNone,
		Brtrue, BrtrueS, Brfalse, BrfalseS),
	"brcmp": newFamily("brcmp", SemanticNone,
		Beq, BeqS, Bne, BneS, Blt, BltS, Bgt, BgtS, Ble, BleS, Bge, BgeS),
}

// custom holds families registered at runtime (via cil/families), kept
// separate from builtin; a custom family shadows a built-in one of the
// same name in FamilyByName and Families.
var custom = map[string]*Family{}

// RegisterFamily adds or replaces a custom multi-opcode family. It is the
// integration point used by cil/families after evaluating a Starlark
// family-definition script; it is exported so other loaders (tests, a
// caller's own config format) can use it directly.
func RegisterFamily(name string, semantic Semantic, ops []OpCode) *Family {
	f := newFamily(name, semantic, ops...)
	custom[name] = f
	return f
}

// FamilyByName looks up a built-in or custom family by name (without the
// leading '%').
func FamilyByName(name string) (*Family, bool) {
	name = strings.ToLower(name)
	if f, ok := custom[name]; ok {
		return f, true
	}
	f, ok := builtin[name]
	return f, ok
}

// Families returns every registered family (built-in and custom), sorted
// by name, for diagnostics and tooling export.
func Families() []*Family {
	out := make([]*Family, 0, len(builtin)+len(custom))
	seen := make(map[string]bool, len(builtin)+len(custom))
	for _, f := range custom {
		out = append(out, f)
		seen[f.Name] = true
	}
	for _, f := range builtin {
		if !seen[f.Name] {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolveMatcher parses the opcode argument of an angle-check (§4.3): a
// bare opcode name, a "%family" reference, or the literal "any".
func ResolveMatcher(token string) (Matcher, error) {
	if token == "any" {
		return Any, nil
	}
	if strings.HasPrefix(token, "%") {
		name := token[1:]
		if f, ok := FamilyByName(name); ok {
			return f, nil
		}
		return nil, &UnknownFamilyError{Name: name}
	}
	if op, ok := ParseOpCode(token); ok {
		return Concrete(op), nil
	}
	return nil, &UnknownOpCodeError{Token: token}
}

// UnknownFamilyError reports a "%name" reference to an undeclared family.
type UnknownFamilyError struct{ Name string }

func (e *UnknownFamilyError) Error() string { return "cil: unknown opcode family \"%" + e.Name + "\"" }

// UnknownOpCodeError reports an opcode argument that is neither a known
// concrete opcode, a family reference, nor "any".
type UnknownOpCodeError struct{ Token string }

func (e *UnknownOpCodeError) Error() string { return "cil: unknown opcode \"" + e.Token + "\"" }
