package cil

// shortFormValue decodes the implicit index/constant baked into a
// short-form opcode's name (e.g. Ldarg0 implies index 0), per §4.1's
// "the integer value is decoded from the opcode shortcut" rule. The
// second return value is false for opcodes with no implicit value (full
// forms, whose value instead comes from Instruction.Operand()).
func shortFormValue(op OpCode) (int64, bool) {
	switch op {
	case Ldarg0, Ldloc0, Stloc0, LdcI40:
		return 0, true
	case Ldarg1, Ldloc1, Stloc1, LdcI41:
		return 1, true
	case Ldarg2, Ldloc2, Stloc2, LdcI42:
		return 2, true
	case Ldarg3, Ldloc3, Stloc3, LdcI43:
		return 3, true
	case LdcI44:
		return 4, true
	case LdcI45:
		return 5, true
	case LdcI46:
		return 6, true
	case LdcI47:
		return 7, true
	case LdcI48:
		return 8, true
	default:
		return 0, false
	}
}

// synthesizeOperand builds the operand a family-typed check should see for
// instr, per §4.1: short forms get their implicit value decoded from the
// opcode; full forms use the instruction's own operand, upgraded to the
// family's expected kind (e.g. a bare Int32 index promoted to a Param)
// when the family calls for parameter/variable semantics. When method is
// non-nil and the family wants Param/Variable semantics, the index is
// looked up in the method's parameter/variable list, but the operand
// produced carries only the index either way, so equality reduces to
// index comparison.
func synthesizeOperand(instr Instruction, sem Semantic, method Method) Operand {
	op := instr.OpCode()
	raw := instr.Operand()

	switch sem {
	case SemanticInt32:
		if v, ok := shortFormValue(op); ok {
			return Int32(int32(v))
		}
		if v, ok := raw.Int32(); ok {
			return Int32(v)
		}
		return raw
	case SemanticParam:
		if v, ok := shortFormValue(op); ok {
			return resolveParam(int(v), method)
		}
		if raw.kind == KindParam {
			return raw
		}
		if v, ok := raw.Int32(); ok {
			return resolveParam(int(v), method)
		}
		return raw
	case SemanticVariable:
		if v, ok := shortFormValue(op); ok {
			return resolveVariable(int(v), method)
		}
		if raw.kind == KindVariable {
			return raw
		}
		if v, ok := raw.Int32(); ok {
			return resolveVariable(int(v), method)
		}
		return raw
	default:
		return raw
	}
}

// CaptureValue returns the operand a CaptureOperand check should record
// for instr under matcher, synthesizing the implicit value of a family's
// short-form opcodes the same way EqualInstruction does internally
// (§4.1: "the operand is synthesized").
func CaptureValue(instr Instruction, matcher Matcher, method Method) Operand {
	sem := SemanticNone
	if f, ok := matcher.(*Family); ok {
		sem = f.Semantic
	}
	return synthesizeOperand(instr, sem, method)
}

// EqualOperands compares two already-resolved operand values under
// matcher's family-vs-concrete cross-numeric relaxation rule (§4.1), for
// backreference checks (EqualsOperand) that already hold both values
// rather than an Instruction to decode.
func EqualOperands(matcher Matcher, a, b Operand) bool {
	return Equal(a, b, isFamilyMatcher(matcher))
}

func resolveParam(index int, method Method) Operand {
	if method != nil {
		for _, p := range method.Parameters() {
			if p.Index == index {
				return Param(p.Index)
			}
		}
	}
	return Param(index)
}

func resolveVariable(index int, method Method) Operand {
	if method != nil {
		for _, v := range method.Variables() {
			if v.Index == index {
				return VariableRef(v.Index)
			}
		}
	}
	return VariableRef(index)
}

// isFamilyMatcher reports whether matcher is a family (or "any") rather
// than a single concrete opcode; this gates the cross-numeric-type
// relaxation in Equal, per §4.1: "when the matcher is a family (not a
// concrete opcode), two primitives of different numeric types... compare
// by value".
func isFamilyMatcher(matcher Matcher) bool {
	_, concrete := matcher.(Concrete)
	return !concrete
}

// Equal implements the operand-equality rule of §4.1.
func Equal(a, b Operand, crossNumericAllowed bool) bool {
	if a.kind == b.kind {
		switch a.kind {
		case KindNone:
			return true
		case KindInt32, KindInt64, KindInt8, KindUInt8:
			return a.i == b.i
		case KindFloat32, KindFloat64:
			return a.f == b.f
		case KindString:
			return a.s == b.s
		case KindParam, KindVariable:
			return a.i == b.i
		case KindField, KindMethod, KindType, KindCallSite:
			return a.s == b.s && a.module == b.module
		case KindInstruction:
			return sameInstruction(a.instr, b.instr)
		case KindInstructionArray:
			return sameInstructionArray(a.instrs, b.instrs)
		default:
			return false
		}
	}

	if crossNumericAllowed && a.isNumeric() && b.isNumeric() {
		return a.numericValue() == b.numericValue()
	}

	return false
}

// sameInstruction compares two nested-instruction operands by identity,
// per §4.1, to avoid recursing into their own operands. Instruction
// implementations are expected to be comparable (typically a pointer or a
// small value type); non-comparable implementations should not be used as
// NestedInstruction operands.
func sameInstruction(a, b Instruction) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func sameInstructionArray(a, b []Instruction) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	return &a[0] == &b[0]
}

// EqualInstruction implements the instruction-matching contract of §4.1:
// equals_instruction(instruction, matcher, expected_operand, method?).
// A nil expected operand (Nil) means "match opcode only".
func EqualInstruction(instr Instruction, matcher Matcher, expected Operand, method Method) bool {
	if !matcher.Matches(instr.OpCode()) {
		return false
	}
	if expected.IsNil() {
		return true
	}

	sem := SemanticNone
	if f, ok := matcher.(*Family); ok {
		sem = f.Semantic
	}

	actual := synthesizeOperand(instr, sem, method)
	return Equal(actual, expected, isFamilyMatcher(matcher))
}
