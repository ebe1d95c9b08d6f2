package dsl

import (
	"os"
	"strconv"
	"strings"

	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/internal/errs"
)

// Pattern is the immutable, ordered check sequence of §3.5: the parser's
// output after quantifier attachment has been resolved (§4.5). It is the
// input to the compiler (§4.6).
type Pattern struct {
	checks []*check.Check
}

// Checks returns the pattern's ordered checks. The slice is owned by the
// Pattern and must not be mutated; callers needing to edit should clone
// the checks they touch (check.Check.Clone), as the compiler does.
func (p *Pattern) Checks() []*check.Check { return p.checks }

// Parse parses pattern text per §4.3 and builds it per §4.5, in one
// step (§6.2's `Pattern::parse`).
func Parse(text string) (*Pattern, error) {
	checks, err := scan(text)
	if err != nil {
		return nil, err
	}
	return Build(checks)
}

// FromFile reads a pattern from disk (conventionally a ".ilregex" file,
// §6.1) and parses it.
func FromFile(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Build is the pattern builder of §4.5/C5: it performs a final pass over
// a scanned check sequence, rejecting any floating KindQuantifier check
// that scan could not fuse onto a preceding atom (a dangling quantifier,
// reported as a CompileError per §7 since the checks are already
// lexically and grammatically well-formed at this point), and rejecting
// any non-quantifiable atom (Alternative, GroupStart) that was itself
// given a non-identity quantifier (§4.6's validation paragraph).
func Build(checks []*check.Check) (*Pattern, error) {
	for _, c := range checks {
		if c.Kind == check.KindQuantifier {
			return nil, &errs.CompileError{
				Kind:    errs.DanglingQuantifier,
				Message: "quantifier " + c.Quantifier.String() + " has no atom to attach to",
			}
		}
		if !c.IsQuantifiable() && !c.Quantifier.IsIdentity() {
			return nil, &errs.CompileError{
				Kind:    errs.QuantifierNotAllowed,
				Message: "quantifier " + c.Quantifier.String() + " cannot attach to " + c.Kind.String(),
			}
		}
	}
	return &Pattern{checks: checks}, nil
}

// String regenerates DSL text for the pattern (§8's round-trip
// invariant: parse(pattern.to_string()) ≡ pattern). The regenerated text
// is not necessarily byte-identical to the original (whitespace and
// comments are not preserved), but parsing it again yields an
// equivalent Pattern.
func (p *Pattern) String() string {
	var b strings.Builder
	for i, c := range p.checks {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeCheck(&b, c)
	}
	return b.String()
}

func writeCheck(b *strings.Builder, c *check.Check) {
	switch c.Kind {
	case check.KindStart:
		b.WriteByte('^')
	case check.KindEnd:
		b.WriteByte('$')
	case check.KindAny:
		b.WriteByte('.')
	case check.KindAlternative:
		b.WriteByte('|')
	case check.KindGroupStart:
		b.WriteByte('(')
		switch {
		case c.Name != "":
			b.WriteString("?'")
			b.WriteString(c.Name)
			b.WriteByte('\'')
		case !c.Capturing:
			b.WriteString("?:")
		}
	case check.KindGroupEnd:
		b.WriteByte(')')
	case check.KindNoOp:
		b.WriteString("<nop>")
	case check.KindOpCode:
		b.WriteString("<op ")
		b.WriteString(c.Matcher.String())
		b.WriteByte('>')
	case check.KindOpCodeOperand:
		b.WriteString("<op ")
		b.WriteString(c.Matcher.String())
		b.WriteByte(' ')
		b.WriteString(literalText(c.Literal))
		b.WriteByte('>')
	case check.KindCaptureOperand:
		b.WriteString("<cap ")
		b.WriteString(c.Matcher.String())
		if c.CaptureName != "" {
			b.WriteString(" '")
			b.WriteString(c.CaptureName)
			b.WriteByte('\'')
		}
		b.WriteByte('>')
	case check.KindEqualsOperand:
		b.WriteString("<ceq ")
		b.WriteString(c.Matcher.String())
		b.WriteString(" '")
		if c.EqualsRef.ByIndex {
			b.WriteString(strconv.Itoa(c.EqualsRef.Index))
		} else {
			b.WriteString(c.EqualsRef.Name)
		}
		b.WriteString("'>")
	case check.KindMemberName:
		b.WriteByte('<')
		b.WriteString(memberPrefix(c.MemberKind))
		b.WriteByte(' ')
		b.WriteString(c.Matcher.String())
		b.WriteString(" \"")
		b.WriteString(stringEscaper.Replace(c.Pattern))
		b.WriteString("\">")
	}

	if !c.Quantifier.IsIdentity() {
		b.WriteString(c.Quantifier.String())
	}
}

func memberPrefix(k cil.MemberKind) string {
	switch k {
	case cil.MemberField:
		return "fld"
	case cil.MemberMethod:
		return "mth"
	case cil.MemberType:
		return "typ"
	default:
		return "cls"
	}
}

func literalText(op cil.Operand) string {
	switch op.Kind() {
	case cil.KindInt32:
		v, _ := op.Int32()
		return strconv.FormatInt(int64(v), 10)
	case cil.KindInt64:
		v, _ := op.Int64()
		return strconv.FormatInt(v, 10) + "l"
	case cil.KindInt8:
		v, _ := op.Int8()
		return strconv.FormatInt(int64(v), 10) + "sb"
	case cil.KindUInt8:
		v, _ := op.UInt8()
		return strconv.FormatUint(uint64(v), 10) + "b"
	case cil.KindFloat32:
		v, _ := op.Float32()
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case cil.KindFloat64:
		v, _ := op.Float64()
		return strconv.FormatFloat(v, 'g', -1, 64) + "d"
	case cil.KindString:
		s, _ := op.Str()
		return "\"" + stringEscaper.Replace(s) + "\""
	default:
		return ""
	}
}

// stringEscaper is the inverse of unquoteString, so a regenerated string
// literal or member-name pattern parses back to the same text.
var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`, "\x00", `\0`)
