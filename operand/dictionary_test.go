package operand

import (
	"testing"

	"github.com/ilrx/ilregex/cil"
)

func TestAddRejectsInvalidName(t *testing.T) {
	d := New()
	if err := d.Add("0bad", cil.Int32(1)); err == nil {
		t.Fatal("expected an error for a digit-leading name")
	}
	if err := d.Add("", cil.Int32(1)); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}

func TestAddAndGet(t *testing.T) {
	d := New()
	if err := d.Add("p", cil.Param(3)); err != nil {
		t.Fatal(err)
	}
	v, ok := d.Get("p")
	if !ok {
		t.Fatal("expected 'p' to be bound")
	}
	if idx, _ := v.Index(); idx != 3 {
		t.Fatalf("expected Param(3), got %+v", v)
	}
	if _, ok := d.Get("missing"); ok {
		t.Fatal("expected 'missing' to be unbound")
	}
}

type fakeNamedOperands struct {
	names map[string]cil.Operand
}

func (f fakeNamedOperands) OperandNames() []string {
	out := make([]string, 0, len(f.names))
	for n := range f.names {
		out = append(out, n)
	}
	return out
}

func (f fakeNamedOperands) NamedOperand(name string) (cil.Operand, bool) {
	v, ok := f.names[name]
	return v, ok
}

func TestAddMatchBulkImports(t *testing.T) {
	d := New()
	src := fakeNamedOperands{names: map[string]cil.Operand{
		"a": cil.Int32(1),
		"b": cil.String("x"),
	}}
	if err := d.AddMatch(src); err != nil {
		t.Fatal(err)
	}

	a, ok := d.Get("a")
	if !ok || a.Kind() != cil.KindInt32 {
		t.Fatalf("expected 'a' imported as int32, got %+v ok=%v", a, ok)
	}
	b, ok := d.Get("b")
	if !ok || b.Kind() != cil.KindString {
		t.Fatalf("expected 'b' imported as string, got %+v ok=%v", b, ok)
	}
}

func TestValidName(t *testing.T) {
	cases := map[string]bool{
		"p":        true,
		"_p1":      true,
		"1p":       false,
		"":         false,
		"has-dash": false,
	}
	for name, want := range cases {
		if got := ValidName(name); got != want {
			t.Fatalf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}
