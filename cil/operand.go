package cil

// Kind tags the value carried by an Operand, per the closed enumeration
// in spec §3.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt32
	KindInt64
	KindInt8
	KindUInt8
	KindFloat32
	KindFloat64
	KindString
	KindParam
	KindVariable
	KindField
	KindMethod
	KindType
	KindCallSite
	KindInstruction
	KindInstructionArray
)

// MemberKind narrows the reference-operand kinds (Field/Method/Type/
// CallSite) for use by the DSL's member-name checks (§4.4).
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberType
	MemberCallSite
)

// Operand is the tagged value carried by one Instruction, modeled after
// §3's closed sum type. It is a value type so that captured operands in a
// MatchResult can be copied cheaply without aliasing the instruction
// stream.
//
// Reference-typed operands (field/method/type/callsite) carry their
// fully-qualified name together with an owning-module identifier, so
// equality can be module-aware per §4.1. Nested-instruction operands
// carry the referenced Instruction/slice by identity; Equal compares them
// by Go interface/slice-header identity rather than recursing into their
// own operands, exactly as §4.1 requires to avoid infinite recursion on
// branch targets.
type Operand struct {
	kind   Kind
	i      int64
	f      float64
	s      string // String value, or FullyQualifiedName for member kinds
	module string // owning module id, for member kinds
	instr  Instruction
	instrs []Instruction
}

// Nil is the canonical null operand.
var Nil = Operand{kind: KindNone}

func Int32(v int32) Operand     { return Operand{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Operand     { return Operand{kind: KindInt64, i: v} }
func Int8(v int8) Operand       { return Operand{kind: KindInt8, i: int64(v)} }
func UInt8(v uint8) Operand     { return Operand{kind: KindUInt8, i: int64(v)} }
func Float32(v float32) Operand { return Operand{kind: KindFloat32, f: float64(v)} }
func Float64(v float64) Operand { return Operand{kind: KindFloat64, f: v} }
func String(v string) Operand   { return Operand{kind: KindString, s: v} }

// Param builds a parameter-reference operand, the synthesized operand for
// short-form argument-load/store opcodes (e.g. Ldarg0 synthesizes Param(0)).
func Param(index int) Operand { return Operand{kind: KindParam, i: int64(index)} }

// VariableRef builds a local-variable-reference operand, symmetric to Param.
func VariableRef(index int) Operand { return Operand{kind: KindVariable, i: int64(index)} }

// Field builds a field-reference operand.
func Field(fullyQualifiedName, module string) Operand {
	return Operand{kind: KindField, s: fullyQualifiedName, module: module}
}

// MethodRef builds a method-reference operand.
func MethodRef(fullyQualifiedName, module string) Operand {
	return Operand{kind: KindMethod, s: fullyQualifiedName, module: module}
}

// Type builds a type-reference operand.
func Type(fullyQualifiedName, module string) Operand {
	return Operand{kind: KindType, s: fullyQualifiedName, module: module}
}

// CallSite builds a callsite-reference operand (indirect-call site
// descriptor, matched the same way as a method reference).
func CallSite(fullyQualifiedName, module string) Operand {
	return Operand{kind: KindCallSite, s: fullyQualifiedName, module: module}
}

// NestedInstruction wraps a single referenced instruction (e.g. a branch
// target resolved to its Instruction rather than a raw offset).
func NestedInstruction(instr Instruction) Operand {
	return Operand{kind: KindInstruction, instr: instr}
}

// NestedInstructionArray wraps a switch-style jump table.
func NestedInstructionArray(instrs []Instruction) Operand {
	return Operand{kind: KindInstructionArray, instrs: instrs}
}

// Kind reports the operand's tag.
func (o Operand) Kind() Kind { return o.kind }

// IsNil reports whether the operand carries no value.
func (o Operand) IsNil() bool { return o.kind == KindNone }

// Int32 returns the operand as an int32 and whether it was that kind.
func (o Operand) Int32() (int32, bool) { return int32(o.i), o.kind == KindInt32 }

// Int64 returns the operand as an int64 and whether it was that kind.
func (o Operand) Int64() (int64, bool) { return o.i, o.kind == KindInt64 }

// Int8 returns the operand as an int8 and whether it was that kind.
func (o Operand) Int8() (int8, bool) { return int8(o.i), o.kind == KindInt8 }

// UInt8 returns the operand as a uint8 and whether it was that kind.
func (o Operand) UInt8() (uint8, bool) { return uint8(o.i), o.kind == KindUInt8 }

// Float32 returns the operand as a float32 and whether it was that kind.
func (o Operand) Float32() (float32, bool) { return float32(o.f), o.kind == KindFloat32 }

// Float64 returns the operand as a float64 and whether it was that kind.
func (o Operand) Float64() (float64, bool) { return o.f, o.kind == KindFloat64 }

// Str returns the operand as a string and whether it was that kind.
func (o Operand) Str() (string, bool) { return o.s, o.kind == KindString }

// Index returns the parameter/variable index and whether the operand was
// one of those two kinds.
func (o Operand) Index() (int, bool) {
	return int(o.i), o.kind == KindParam || o.kind == KindVariable
}

// FullyQualifiedName returns the reference name for a field/method/type/
// callsite operand and whether the operand was a reference kind.
func (o Operand) FullyQualifiedName() (string, bool) {
	return o.s, o.isReference()
}

// Module returns the owning-module identifier for a reference operand.
func (o Operand) Module() (string, bool) {
	return o.module, o.isReference()
}

// MemberKind reports which reference kind this operand is, if any.
func (o Operand) MemberKind() (MemberKind, bool) {
	switch o.kind {
	case KindField:
		return MemberField, true
	case KindMethod:
		return MemberMethod, true
	case KindType:
		return MemberType, true
	case KindCallSite:
		return MemberCallSite, true
	default:
		return 0, false
	}
}

func (o Operand) isReference() bool {
	switch o.kind {
	case KindField, KindMethod, KindType, KindCallSite:
		return true
	default:
		return false
	}
}

// Instruction returns the wrapped nested instruction, if any.
func (o Operand) Instruction() (Instruction, bool) {
	return o.instr, o.kind == KindInstruction
}

// Instructions returns the wrapped nested instruction array, if any.
func (o Operand) Instructions() ([]Instruction, bool) {
	return o.instrs, o.kind == KindInstructionArray
}

// isNumeric reports whether the operand carries one of the primitive
// numeric kinds eligible for the cross-type relaxation in §4.1.
func (o Operand) isNumeric() bool {
	switch o.kind {
	case KindInt32, KindInt64, KindInt8, KindUInt8, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// numericValue returns the operand's numeric value as a float64, for the
// family cross-type comparison in §4.1. Int32, Int8 and UInt8 values
// convert exactly; Int64 values beyond 2^53 lose precision.
func (o Operand) numericValue() float64 {
	switch o.kind {
	case KindFloat32, KindFloat64:
		return o.f
	default:
		return float64(o.i)
	}
}
