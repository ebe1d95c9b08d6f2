package member

import "testing"

func TestCompileLiteralField(t *testing.T) {
	re, err := Compile("Count", KindField)
	if err != nil {
		t.Fatal(err)
	}

	if !re.MatchString("System.Int32 Foo::Count") {
		t.Fatal("expected literal field name to match after a '::' separator")
	}
	if re.MatchString("AccountCount") {
		t.Fatal("literal identifier must not match as a substring of another identifier")
	}
}

func TestCompileLiteralMethod(t *testing.T) {
	re, err := Compile("M", KindMethod)
	if err != nil {
		t.Fatal(err)
	}

	if !re.MatchString("System.Void Foo::M()") {
		t.Fatal("expected method tail to match a parameter list")
	}
	if re.MatchString("System.Void Foo::M") {
		t.Fatal("method kind requires a parameter-list tail")
	}
}

func TestCompileVerbatimRegex(t *testing.T) {
	re, err := Compile("?^Foo::(M|N)\\(.*\\)$", KindMethod)
	if err != nil {
		t.Fatal(err)
	}

	if !re.MatchString("Foo::M()") {
		t.Fatal("verbatim regex should be used as-is")
	}
	if re.MatchString("Bar::M()") {
		t.Fatal("verbatim regex should anchor to Foo")
	}
}

func TestCompileInvalidVerbatimRegex(t *testing.T) {
	if _, err := Compile("?(", KindField); err == nil {
		t.Fatal("expected an error for an unparsable verbatim regex")
	}
}

func TestEscapeLiteralMetacharacters(t *testing.T) {
	re, err := Compile("M.N", KindField)
	if err != nil {
		t.Fatal(err)
	}

	if !re.MatchString("Foo.M.N") {
		t.Fatal("literal dot must be escaped, not treated as any-char")
	}
	if re.MatchString("FooMXN") {
		t.Fatal("escaped dot must not match an arbitrary character")
	}
}
