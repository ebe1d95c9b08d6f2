package ilregex

import (
	"testing"

	"github.com/ilrx/ilregex/cil"
)

func instrs(ops ...cil.OpCode) []cil.Instruction {
	out := make([]cil.Instruction, len(ops))
	for i, op := range ops {
		out[i] = cil.NewPlain(op)
	}
	return out
}

// Scenario 6 of §8: a member-name check against a method reference.
func TestMatchMemberName(t *testing.T) {
	re, err := Compile(`<mth call "M">`, None)
	if err != nil {
		t.Fatal(err)
	}

	in := []cil.Instruction{
		cil.NewPlainOperand(cil.Call, cil.MethodRef("System.Void Foo::M()", "mod")),
		cil.NewPlain(cil.Ret),
	}

	m, err := re.Match(in)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Success() || m.Length() != 1 {
		t.Fatalf("got success=%v length=%d", m.Success(), m.Length())
	}
}

func TestMatchUnsuccessfulGroupAndOperandAreEmpty(t *testing.T) {
	re, err := Compile(`<op ret>`, None)
	if err != nil {
		t.Fatal(err)
	}

	m, err := re.Match(instrs(cil.Nop))
	if err != nil {
		t.Fatal(err)
	}
	if m.Success() {
		t.Fatal("expected no match")
	}
	if g := m.Group(0); g.Matched {
		t.Fatalf("expected the empty group, got %+v", g)
	}
	if o := m.Operand(0); o.Matched() {
		t.Fatalf("expected the empty operand, got %+v", o)
	}
}

func TestMatchWholeMatchGroupIsIndexZero(t *testing.T) {
	re, err := Compile(`<op ldarg.0> <op ret>`, None)
	if err != nil {
		t.Fatal(err)
	}

	m, err := re.Match(instrs(cil.Ldarg0, cil.Ret))
	if err != nil {
		t.Fatal(err)
	}
	g := m.Group(0)
	if !g.Matched || g.Start != 0 || g.End != 2 {
		t.Fatalf("expected the whole match at group 0, got %+v", g)
	}
}

func TestFindAllReturnsEveryNonOverlappingMatch(t *testing.T) {
	re, err := Compile(`<op nop>`, None)
	if err != nil {
		t.Fatal(err)
	}

	in := instrs(cil.Nop, cil.Ret, cil.Nop, cil.Nop)
	matches, err := re.FindAll(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, want := range []int{0, 2, 3} {
		if matches[i].Index() != want {
			t.Fatalf("match %d: expected index %d, got %d", i, want, matches[i].Index())
		}
	}
}

func TestNextMatchAdvancesPastZeroLengthMatch(t *testing.T) {
	re, err := Compile(`^`, None)
	if err != nil {
		t.Fatal(err)
	}

	m, err := re.Match(instrs(cil.Nop, cil.Nop))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Success() || m.Length() != 0 {
		t.Fatalf("expected a zero-length match at 0, got %+v", m)
	}

	next, err := m.NextMatch()
	if err != nil {
		t.Fatal(err)
	}
	if next.Success() {
		t.Fatal("^ should not match again past position 0")
	}
}

func TestOperandDictionarySeedsBackreference(t *testing.T) {
	re, err := Compile(`<ceq %ldarg 'seed'>`, None)
	if err != nil {
		t.Fatal(err)
	}

	dict := NewOperandDictionary()
	if err := dict.Add("seed", cil.Param(2)); err != nil {
		t.Fatal(err)
	}

	in := []cil.Instruction{cil.NewPlainOperand(cil.LdargS, cil.Int32(2))}
	m, err := re.Match(in, WithOperands(dict))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Success() {
		t.Fatal("expected the dictionary-seeded backreference to match")
	}
}

func TestTypedAccessorPanicsOnKindMismatch(t *testing.T) {
	re, err := Compile(`<cap ldstr 'x'>`, None)
	if err != nil {
		t.Fatal(err)
	}

	in := []cil.Instruction{cil.NewPlainOperand(cil.Ldstr, cil.String("a"))}
	m, err := re.Match(in)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected Int32() on a string-typed operand to panic")
		}
	}()
	m.OperandByName("x").Int32()
}

func TestMatchIdempotentOnIdenticalInputs(t *testing.T) {
	re, err := Compile(`<op nop>+`, None)
	if err != nil {
		t.Fatal(err)
	}
	in := instrs(cil.Nop, cil.Nop, cil.Ret)

	a, err := re.Match(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := re.Match(in)
	if err != nil {
		t.Fatal(err)
	}
	if a.Success() != b.Success() || a.Index() != b.Index() || a.End() != b.End() {
		t.Fatal("rerunning the same match should produce an equal result")
	}
}

func TestPatternStringRoundTripIsBehaviorallyEquivalent(t *testing.T) {
	src := "<cap %ldarg 'p'>* <ceq %ldarg 'p'>"
	p, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	again, err := Parse(p.String())
	if err != nil {
		t.Fatalf("round-trip parse of %q failed: %v", p.String(), err)
	}

	in := instrs(cil.Ldarg0, cil.Ldarg0)
	r1 := New(p, None)
	r2 := New(again, None)

	m1, err := r1.Match(in)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := r2.Match(in)
	if err != nil {
		t.Fatal(err)
	}
	if m1.Success() != m2.Success() || m1.Length() != m2.Length() {
		t.Fatalf("round trip changed match behavior: %+v vs %+v", m1, m2)
	}
}

func TestGroupCountIncludesSyntheticOuterGroup(t *testing.T) {
	p, err := Parse("(?'a'<op nop>)")
	if err != nil {
		t.Fatal(err)
	}
	if p.GroupCount() != 2 {
		t.Fatalf("expected 2 groups (outer + 'a'), got %d", p.GroupCount())
	}
}
