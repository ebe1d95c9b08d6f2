package cil

import "testing"

func TestParseOpCode(t *testing.T) {
	tests := []struct {
		in   string
		want OpCode
		ok   bool
	}{
		{"ldarg.0", Ldarg0, true},
		{"LDARG.0", Ldarg0, true},
		{"ldarg_0", Ldarg0, true},
		{"ret", Ret, true},
		{"nope", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseOpCode(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseOpCode(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("ParseOpCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNamesIncludesAliases(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names() returned no entries")
	}

	var found bool
	for _, n := range names {
		if n.OpCode == Ldarg0 {
			found = true
			if n.Canonical != "ldarg.0" {
				t.Fatalf("canonical = %q, want ldarg.0", n.Canonical)
			}
			if !containsAlias(n.Aliases, "ldarg_0") {
				t.Fatalf("aliases = %v, want to include ldarg_0", n.Aliases)
			}
		}
	}
	if !found {
		t.Fatal("Names() missing Ldarg0")
	}
}

func containsAlias(aliases []string, target string) bool {
	for _, a := range aliases {
		if a == target {
			return true
		}
	}
	return false
}
