package check

import "testing"

func TestParseQuantifierShorthands(t *testing.T) {
	tests := []struct {
		in   string
		want Quantifier
	}{
		{"?", Quantifier{Min: 0, Max: 1, Greedy: true}},
		{"*", Quantifier{Min: 0, Max: Unbounded, Greedy: true}},
		{"+", Quantifier{Min: 1, Max: Unbounded, Greedy: true}},
		{"*?", Quantifier{Min: 0, Max: Unbounded, Greedy: false}},
		{"{3}", Quantifier{Min: 3, Max: 3, Greedy: true}},
		{"{2,}", Quantifier{Min: 2, Max: Unbounded, Greedy: true}},
		{"{2,5}", Quantifier{Min: 2, Max: 5, Greedy: true}},
		{"{2,5}?", Quantifier{Min: 2, Max: 5, Greedy: false}},
	}

	for _, tt := range tests {
		got, err := ParseQuantifier(tt.in)
		if err != nil {
			t.Fatalf("ParseQuantifier(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseQuantifier(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseQuantifierRejectsInvalidShapes(t *testing.T) {
	for _, in := range []string{"{0,0}", "{5,2}", "{x}", "", "%", "{3"} {
		if _, err := ParseQuantifier(in); err == nil {
			t.Fatalf("ParseQuantifier(%q): expected an error", in)
		}
	}
}

func TestQuantifierStringPrefersShorthand(t *testing.T) {
	tests := []struct {
		q    Quantifier
		want string
	}{
		{Quantifier{Min: 0, Max: 1, Greedy: true}, "?"},
		{Quantifier{Min: 0, Max: Unbounded, Greedy: true}, "*"},
		{Quantifier{Min: 1, Max: Unbounded, Greedy: true}, "+"},
		{Quantifier{Min: 3, Max: 3, Greedy: true}, "{3}"},
		{Quantifier{Min: 2, Max: Unbounded, Greedy: false}, "{2,}?"},
		{Quantifier{Min: 1, Max: 1, Greedy: false}, "{1}?"},
	}

	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Fatalf("%+v.String() = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestQuantifierGreedyIgnoredWhenMinEqualsMax(t *testing.T) {
	q := Quantifier{Min: 2, Max: 2, Greedy: false}
	if !q.EffectiveGreedy() {
		t.Fatal("greedy flag should be ignored when min == max")
	}
}

func TestQuantifierIdentityIgnoresGreedyFlag(t *testing.T) {
	if !(Quantifier{Min: 1, Max: 1, Greedy: false}).IsIdentity() {
		t.Fatal("(1,1,false) must still be the identity quantifier")
	}
}

func TestQuantifierValidate(t *testing.T) {
	if err := (Quantifier{Min: 0, Max: 0}).Validate(); err == nil {
		t.Fatal("(0,0) must be rejected")
	}
	if err := (Quantifier{Min: 3, Max: 1}).Validate(); err == nil {
		t.Fatal("min > max must be rejected")
	}
	if err := (Quantifier{Min: 1, Max: 1}).Validate(); err != nil {
		t.Fatalf("(1,1) should be valid: %v", err)
	}
}
