package families

import (
	_ "embed"
	"testing"

	"github.com/ilrx/ilregex/cil"
)

//go:embed testdata/sample.star
var sampleScript []byte

func TestLoadRegistersFamilies(t *testing.T) {
	if err := Load("sample.star", sampleScript); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f, ok := cil.FamilyByName("typecheck")
	if !ok {
		t.Fatal("typecheck family was not registered")
	}
	if !f.Matches(cil.Box) || !f.Matches(cil.Isinst) || f.Matches(cil.Ldelem) {
		t.Errorf("typecheck family has unexpected membership: %+v", f)
	}

	elem, ok := cil.FamilyByName("elem")
	if !ok {
		t.Fatal("elem family was not registered")
	}
	if !elem.Matches(cil.Ldelem) || !elem.Matches(cil.Stelem) {
		t.Errorf("elem family has unexpected membership: %+v", elem)
	}
}

func TestLoadRejectsUnknownOpcode(t *testing.T) {
	src := []byte(`family("bogus", opcodes = ["not.a.real.opcode"])`)
	if err := Load("bad.star", src); err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
}

func TestLoadRejectsEmptyOpcodes(t *testing.T) {
	src := []byte(`family("bogus", opcodes = [])`)
	if err := Load("bad.star", src); err == nil {
		t.Fatal("expected an error for an empty opcode list")
	}
}
