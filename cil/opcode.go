// Package cil models the Common Intermediate Language instruction surface
// that the regex engine matches against: opcodes, operands and the
// multi-opcode families used by pattern atoms such as <op %ldarg>.
//
// The package does not load, assemble or decode real method bodies; that
// is the job of an external bytecode library. It only defines the shapes
// the matcher needs from one (see Instruction, Method) and a closed,
// hand-maintained table of the CIL opcode set sufficient to drive the
// pattern language end to end.
package cil

import "strings"

// OpCode identifies a single CIL instruction opcode.
type OpCode uint16

// The concrete opcode set. Short-form opcodes (the ones with an implicit
// operand, e.g. Ldarg0) exist alongside their full form (Ldarg) because
// patterns must be able to match either spelling transparently through a
// family (see Family).
const (
	Nop OpCode = iota
	Ret
	Add
	Sub
	Mul
	Div
	Dup
	Pop
	Throw

	Ldarg0
	Ldarg1
	Ldarg2
	Ldarg3
	LdargS
	Ldarg

	StargS
	Starg

	Ldloc0
	Ldloc1
	Ldloc2
	Ldloc3
	LdlocS
	Ldloc

	Stloc0
	Stloc1
	Stloc2
	Stloc3
	StlocS
	Stloc

	LdcI40
	LdcI41
	LdcI42
	LdcI43
	LdcI44
	LdcI45
	LdcI46
	LdcI47
	LdcI48
	LdcI4S
	LdcI4
	LdcI8
	LdcR4
	LdcR8

	Ldstr

	Ldfld
	Ldsfld
	Stfld
	Stsfld
	Ldflda
	Ldsflda

	Call
	Callvirt
	Calli
	Newobj

	Ldtoken

	Box
	Unbox
	UnboxAny
	Castclass
	Isinst
	Newarr
	Ldlen
	Ldelem
	Stelem

	Br
	BrS
	Brtrue
	BrtrueS
	Brfalse
	BrfalseS
	Beq
	BeqS
	Bne
	BneS
	Blt
	BltS
	Bgt
	BgtS
	Ble
	BleS
	Bge
	BgeS

	Leave
	LeaveS
	Endfinally

	opCodeCount
)

// name holds the canonical (dotted) spelling of an opcode, matching the
// textual form CIL disassemblers use. Aliases (dots vs underscores,
// case) are derived from this table rather than stored redundantly.
var name = [opCodeCount]string{
	Nop:      "nop",
	Ret:      "ret",
	Add:      "add",
	Sub:      "sub",
	Mul:      "mul",
	Div:      "div",
	Dup:      "dup",
	Pop:      "pop",
	Throw:    "throw",
	Ldarg0:   "ldarg.0",
	Ldarg1:   "ldarg.1",
	Ldarg2:   "ldarg.2",
	Ldarg3:   "ldarg.3",
	LdargS:   "ldarg.s",
	Ldarg:    "ldarg",
	StargS:   "starg.s",
	Starg:    "starg",
	Ldloc0:   "ldloc.0",
	Ldloc1:   "ldloc.1",
	Ldloc2:   "ldloc.2",
	Ldloc3:   "ldloc.3",
	LdlocS:   "ldloc.s",
	Ldloc:    "ldloc",
	Stloc0:   "stloc.0",
	Stloc1:   "stloc.1",
	Stloc2:   "stloc.2",
	Stloc3:   "stloc.3",
	StlocS:   "stloc.s",
	Stloc:    "stloc",
	LdcI40:   "ldc.i4.0",
	LdcI41:   "ldc.i4.1",
	LdcI42:   "ldc.i4.2",
	LdcI43:   "ldc.i4.3",
	LdcI44:   "ldc.i4.4",
	LdcI45:   "ldc.i4.5",
	LdcI46:   "ldc.i4.6",
	LdcI47:   "ldc.i4.7",
	LdcI48:   "ldc.i4.8",
	LdcI4S:   "ldc.i4.s",
	LdcI4:    "ldc.i4",
	LdcI8:    "ldc.i8",
	LdcR4:    "ldc.r4",
	LdcR8:    "ldc.r8",
	Ldstr:    "ldstr",
	Ldfld:    "ldfld",
	Ldsfld:   "ldsfld",
	Stfld:    "stfld",
	Stsfld:   "stsfld",
	Ldflda:   "ldflda",
	Ldsflda:  "ldsflda",
	Call:     "call",
	Callvirt: "callvirt",
	Calli:    "calli",
	Newobj:   "newobj",
	Ldtoken:  "ldtoken",
	Box:      "box",
	Unbox:    "unbox",
	UnboxAny: "unbox.any",
	Castclass: "castclass",
	Isinst:   "isinst",
	Newarr:   "newarr",
	Ldlen:    "ldlen",
	Ldelem:   "ldelem",
	Stelem:   "stelem",
	Br:       "br",
	BrS:      "br.s",
	Brtrue:   "brtrue",
	BrtrueS:  "brtrue.s",
	Brfalse:  "brfalse",
	BrfalseS: "brfalse.s",
	Beq:      "beq",
	BeqS:     "beq.s",
	Bne:      "bne.un",
	BneS:     "bne.un.s",
	Blt:      "blt",
	BltS:     "blt.s",
	Bgt:      "bgt",
	BgtS:     "bgt.s",
	Ble:      "ble",
	BleS:     "ble.s",
	Bge:      "bge",
	BgeS:     "bge.s",
	Leave:    "leave",
	LeaveS:   "leave.s",
	Endfinally: "endfinally",
}

// String returns the canonical dotted spelling of the opcode, or an empty
// string for an opcode value outside the closed enumeration.
func (o OpCode) String() string {
	if int(o) < len(name) {
		return name[o]
	}
	return ""
}

// byCanonical maps every accepted spelling (dotted, underscored, and their
// case-insensitive folds) to its opcode, built once at init time.
var byCanonical map[string]OpCode

func init() {
	byCanonical = make(map[string]OpCode, opCodeCount*2)
	for i := range name {
		op := OpCode(i)
		n := name[op]
		if n == "" {
			continue
		}
		byCanonical[n] = op
		byCanonical[strings.ReplaceAll(n, ".", "_")] = op
	}
}

// ParseOpCode resolves the textual spelling of a concrete opcode used in
// the DSL's `op`/`cap`/`ceq`/... argument position (§4.3). Matching is
// case-insensitive and treats '.' and '_' as interchangeable, per §4.3's
// "Opcode argument" rule. It does not resolve family names (leading '%')
// or the "any" token; see ResolveMatcher for the full argument grammar.
func ParseOpCode(s string) (OpCode, bool) {
	key := strings.ToLower(strings.ReplaceAll(s, "_", "."))
	op, ok := byCanonical[key]
	return op, ok
}

// Names returns every concrete opcode together with its canonical and
// underscored aliases, in opcode-declaration order, so external tooling
// (editor plugins, the opcode-to-trie exporter mentioned in §1 as an
// out-of-scope consumer) can derive a recognizer without depending on
// this package's internals.
func Names() []OpcodeAlias {
	out := make([]OpcodeAlias, 0, opCodeCount)
	for i := range name {
		n := name[i]
		if n == "" {
			continue
		}
		out = append(out, OpcodeAlias{
			OpCode:   OpCode(i),
			Canonical: n,
			Aliases:  []string{n, strings.ReplaceAll(n, ".", "_")},
		})
	}
	return out
}

// OpcodeAlias is one row of the exported opcode-name table (see Names).
type OpcodeAlias struct {
	OpCode    OpCode
	Canonical string
	Aliases   []string
}
