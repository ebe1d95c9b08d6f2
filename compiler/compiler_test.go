package compiler

import (
	"testing"

	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/dsl"
	"github.com/ilrx/ilregex/internal/errs"
)

func mustParse(t *testing.T, text string) *dsl.Pattern {
	t.Helper()
	p, err := dsl.Parse(text)
	if err != nil {
		t.Fatalf("dsl.Parse(%q): %v", text, err)
	}
	return p
}

func TestCompileWrapsOuterGroup(t *testing.T) {
	prog, err := Compile(mustParse(t, "<op nop>"))
	if err != nil {
		t.Fatal(err)
	}

	if prog.Checks[0].Kind != check.KindNoOp {
		t.Fatalf("Checks[0] must be the sentinel, got %v", prog.Checks[0].Kind)
	}
	if prog.Checks[1].Kind != check.KindGroupStart || prog.Checks[1].CaptureIndex != 0 {
		t.Fatalf("Checks[1] must be the synthetic outer group at index 0, got %+v", prog.Checks[1])
	}
	last := prog.Checks[len(prog.Checks)-1]
	if last.Kind != check.KindGroupEnd {
		t.Fatalf("program must end with the outer GroupEnd, got %v", last.Kind)
	}
	if prog.GroupCount != 1 {
		t.Fatalf("expected GroupCount 1 (just the outer group), got %d", prog.GroupCount)
	}
}

func TestCompileNumbersNamedGroups(t *testing.T) {
	prog, err := Compile(mustParse(t, "(?'a'<op nop>) (?'b'<op nop>)"))
	if err != nil {
		t.Fatal(err)
	}

	if prog.GroupCount != 3 {
		t.Fatalf("expected 3 groups (outer + a + b), got %d", prog.GroupCount)
	}
	if idx, ok := prog.GroupNames["a"]; !ok || idx != 1 {
		t.Fatalf("expected group 'a' at index 1, got %d, ok=%v", idx, ok)
	}
	if idx, ok := prog.GroupNames["b"]; !ok || idx != 2 {
		t.Fatalf("expected group 'b' at index 2, got %d, ok=%v", idx, ok)
	}
}

func TestCompileResolvesGroupLinks(t *testing.T) {
	prog, err := Compile(mustParse(t, "(<op nop>)"))
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range prog.Checks {
		if c.Kind != check.KindGroupStart {
			continue
		}
		if c.Other < 0 || prog.Checks[c.Other].Kind != check.KindGroupEnd {
			t.Fatalf("GroupStart at %d has no valid GroupEnd link: %+v", i, c)
		}
		if prog.Checks[c.Other].Other != i {
			t.Fatalf("GroupEnd at %d does not link back to its GroupStart at %d", c.Other, i)
		}
	}
}

func TestCompileFillsEmptyGroupAndAlternative(t *testing.T) {
	prog, err := Compile(mustParse(t, "() (<op nop>|)"))
	if err != nil {
		t.Fatal(err)
	}

	var noOps int
	for _, c := range prog.Checks {
		if c.Kind == check.KindNoOp {
			noOps++
		}
	}
	// One sentinel at Checks[0], one filling the empty group, one filling
	// the empty right-hand alternative.
	if noOps != 3 {
		t.Fatalf("expected 3 no-ops (sentinel + 2 fills), got %d", noOps)
	}
}

func TestCompileNumbersOperandCaptures(t *testing.T) {
	prog, err := Compile(mustParse(t, "<cap %ldarg 'p'> <cap %ldarg>"))
	if err != nil {
		t.Fatal(err)
	}

	if prog.OperandCount != 2 {
		t.Fatalf("expected 2 operand captures, got %d", prog.OperandCount)
	}
	if idx, ok := prog.OperandNames["p"]; !ok || idx != 0 {
		t.Fatalf("expected 'p' at operand index 0, got %d, ok=%v", idx, ok)
	}
}

func TestCompileUnbalancedGroupIsCompileError(t *testing.T) {
	// Built directly from a hand-assembled check list, bypassing the text
	// parser; the parser does not check group balance either, so an
	// unclosed '(' in text also reaches Compile.
	unclosed, err := dsl.Build([]*check.Check{check.New(check.KindGroupStart)})
	if err != nil {
		t.Fatalf("dsl.Build: %v", err)
	}
	if _, err := Compile(unclosed); err == nil {
		t.Fatal("expected an unbalanced-group compile error")
	}
}

func TestCompileQuantifierOnGroupStartIsCompileError(t *testing.T) {
	// A hand-assembled GroupStart carrying a non-identity quantifier, the
	// way a text pattern never can (the parser only ever fuses a trailing
	// quantifier onto the matching ')'), so this path is only reachable by
	// bypassing the text parser the same way TestCompileUnbalancedGroupIsCompileError does.
	bad := check.New(check.KindGroupStart)
	bad.Quantifier = check.Quantifier{Min: 0, Max: check.Unbounded, Greedy: true}

	_, err := dsl.Build([]*check.Check{bad, check.New(check.KindGroupEnd)})
	if err == nil {
		t.Fatal("expected a quantifier-not-allowed compile error")
	}
	ce, ok := err.(*errs.CompileError)
	if !ok {
		t.Fatalf("expected a *errs.CompileError, got %T", err)
	}
	if ce.Kind != errs.QuantifierNotAllowed {
		t.Fatalf("expected errs.QuantifierNotAllowed, got %v", ce.Kind)
	}
}

func TestCompileQuantifierOnAlternativeIsCompileError(t *testing.T) {
	bad := check.New(check.KindAlternative)
	bad.Quantifier = check.Quantifier{Min: 0, Max: 1, Greedy: true}

	_, err := dsl.Build([]*check.Check{bad})
	if err == nil {
		t.Fatal("expected a quantifier-not-allowed compile error")
	}
	ce, ok := err.(*errs.CompileError)
	if !ok {
		t.Fatalf("expected a *errs.CompileError, got %T", err)
	}
	if ce.Kind != errs.QuantifierNotAllowed {
		t.Fatalf("expected errs.QuantifierNotAllowed, got %v", ce.Kind)
	}
}
