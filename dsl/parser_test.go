package dsl

import (
	"testing"

	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/internal/errs"
)

func TestParseSimpleSequence(t *testing.T) {
	p, err := Parse("<op ldarg.0> <op ldc.i4.5> <op add>")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(p.Checks()))
	}
	for _, c := range p.Checks() {
		if c.Kind != check.KindOpCode {
			t.Fatalf("expected OpCode checks, got %v", c.Kind)
		}
	}
}

func TestParseQuantifierFusion(t *testing.T) {
	p, err := Parse("<op ldarg.0>?")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 1 {
		t.Fatalf("expected the quantifier fused onto one check, got %d checks", len(p.Checks()))
	}
	q := p.Checks()[0].Quantifier
	if q.Min != 0 || q.Max != 1 || !q.Greedy {
		t.Fatalf("expected (0,1,greedy), got %+v", q)
	}
}

func TestParseIgnoresComments(t *testing.T) {
	p, err := Parse("/* x */ <op nop> // trailing\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 1 {
		t.Fatalf("expected 1 check, got %d", len(p.Checks()))
	}
}

func TestParseNamedGroup(t *testing.T) {
	p, err := Parse("(?'g' <op nop>)")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 3 {
		t.Fatalf("expected GroupStart, OpCode, GroupEnd; got %d checks", len(p.Checks()))
	}
	start := p.Checks()[0]
	if start.Kind != check.KindGroupStart || start.Name != "g" || !start.Capturing {
		t.Fatalf("expected a capturing group named 'g', got %+v", start)
	}
}

func TestParseMissingOpcodeArgument(t *testing.T) {
	_, err := Parse("<op>")
	if err == nil {
		t.Fatal("expected an error for a missing argument")
	}
	pe, ok := err.(*errs.ParseError)
	if !ok {
		t.Fatalf("expected a *errs.ParseError, got %T", err)
	}
	if pe.Column != 5 {
		t.Fatalf("expected the error at column 5, got %d", pe.Column)
	}
}

func TestParseUnknownPrefix(t *testing.T) {
	_, err := Parse("<bogus x>")
	if err == nil {
		t.Fatal("expected an error for an unknown prefix")
	}
}

func TestParseBackreference(t *testing.T) {
	p, err := Parse("<cap %ldarg 'p'> . <ceq %ldarg 'p'>")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(p.Checks()))
	}
	if p.Checks()[0].CaptureName != "p" {
		t.Fatalf("expected capture name 'p', got %q", p.Checks()[0].CaptureName)
	}
	if p.Checks()[2].EqualsRef.Name != "p" {
		t.Fatalf("expected backreference to 'p', got %+v", p.Checks()[2].EqualsRef)
	}
}

func TestParseMemberName(t *testing.T) {
	p, err := Parse(`<mth call "M">`)
	if err != nil {
		t.Fatal(err)
	}
	c := p.Checks()[0]
	if c.Kind != check.KindMemberName || c.Pattern != "M" || c.Member == nil {
		t.Fatalf("expected a compiled member-name check, got %+v", c)
	}
}

func TestParseDanglingQuantifier(t *testing.T) {
	_, err := Parse("(<op nop>)|?")
	if err == nil {
		t.Fatal("expected a dangling quantifier error")
	}
	if _, ok := err.(*errs.CompileError); !ok {
		t.Fatalf("expected a *errs.CompileError, got %T", err)
	}
}

func TestPatternStringRoundTrip(t *testing.T) {
	src := "<op ldc.i4 5> <cap %ldarg 'p'>+ <ceq %ldarg 'p'>"
	p, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	again, err := Parse(p.String())
	if err != nil {
		t.Fatalf("round-trip parse failed on %q: %v", p.String(), err)
	}
	if len(again.Checks()) != len(p.Checks()) {
		t.Fatalf("round trip changed check count: %d vs %d", len(again.Checks()), len(p.Checks()))
	}
}

func TestParseLiteralOperandTypeTags(t *testing.T) {
	p, err := Parse(`<op ldc.i4 5> <op ldc.i8 5l> <op ldc.i4 5sb> <op ldc.i4 5b> <op ldc.r4 5f> <op ldc.r8 5d>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Checks()) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(p.Checks()))
	}
}
