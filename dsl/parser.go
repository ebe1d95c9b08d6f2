package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ilrx/ilregex/check"
	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/internal/errs"
	"github.com/ilrx/ilregex/internal/member"
)

func parseErr(line, col int, kind errs.ParseKind, format string, args ...any) *errs.ParseError {
	return &errs.ParseError{Line: line, Column: col, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// scan performs the single linear pass over text described by §4.3's
// grammar, emitting one Check per token. A bare quantifier fuses onto
// the immediately preceding atom right away when that atom is still
// unquantified and quantifiable; otherwise it is emitted as a standalone
// KindQuantifier check for Build to reject as dangling.
func scan(text string) ([]*check.Check, error) {
	r := newReader(text)
	var checks []*check.Check
	var fuseTarget *check.Check

	for {
		c, ok := r.peek()
		if !ok {
			break
		}

		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			r.next()
			continue

		case '/':
			consumed, err := skipComment(r)
			if err != nil {
				return nil, err
			}
			if !consumed {
				line, col := r.position()
				r.next()
				return nil, parseErr(line, col, errs.Lexical, "unexpected character '/'")
			}
			continue

		case '^':
			r.next()
			fuseTarget = appendCheck(&checks, check.New(check.KindStart))

		case '$':
			r.next()
			fuseTarget = appendCheck(&checks, check.New(check.KindEnd))

		case '.':
			r.next()
			fuseTarget = appendCheck(&checks, check.New(check.KindAny))

		case '|':
			r.next()
			appendCheck(&checks, check.New(check.KindAlternative))
			fuseTarget = nil

		case '(':
			line, col := r.position()
			r.next()
			chk, err := parseGroupStart(r, line, col)
			if err != nil {
				return nil, err
			}
			appendCheck(&checks, chk)
			fuseTarget = nil // GroupStart is never quantifiable (§4.6)

		case ')':
			r.next()
			fuseTarget = appendCheck(&checks, check.New(check.KindGroupEnd))

		case '<':
			line, col := r.position()
			r.next()
			chk, err := parseAngleCheck(r, line, col)
			if err != nil {
				return nil, err
			}
			appendCheck(&checks, chk)
			fuseTarget = chk

		case '?', '*', '+', '{':
			line, col := r.position()
			lit, err := scanQuantifierLiteral(r)
			if err != nil {
				return nil, err
			}
			q, err := check.ParseQuantifier(lit)
			if err != nil {
				return nil, parseErr(line, col, errs.Semantic, "bad quantifier %q: %v", lit, err)
			}
			if fuseTarget != nil && fuseTarget.IsQuantifiable() && fuseTarget.Quantifier.IsIdentity() {
				fuseTarget.Quantifier = q
			} else {
				floating := check.New(check.KindQuantifier)
				floating.Quantifier = q
				checks = append(checks, floating)
				fuseTarget = nil
			}

		default:
			line, col := r.position()
			r.next()
			return nil, parseErr(line, col, errs.Lexical, "unexpected character %q", c)
		}
	}

	return checks, nil
}

func appendCheck(checks *[]*check.Check, c *check.Check) *check.Check {
	*checks = append(*checks, c)
	return c
}

func skipComment(r *reader) (bool, error) {
	line, col := r.position()
	start := r.pos
	r.next() // consume leading '/'

	c, ok := r.peek()
	if !ok {
		r.pos, r.line, r.col = start, line, col
		return false, nil
	}

	switch c {
	case '/':
		for {
			c, ok := r.peek()
			if !ok || c == '\n' {
				break
			}
			r.next()
		}
		return true, nil
	case '*':
		r.next()
		for {
			c, ok := r.next()
			if !ok {
				return false, parseErr(line, col, errs.Lexical, "unterminated block comment")
			}
			if c == '*' && r.match('/') {
				return true, nil
			}
		}
	default:
		r.pos, r.line, r.col = start, line, col
		return false, nil
	}
}

func scanQuantifierLiteral(r *reader) (string, error) {
	line, col := r.position()
	var b strings.Builder

	c, _ := r.next()
	b.WriteRune(c)

	if c == '{' {
		closed := false
		for {
			ch, ok := r.next()
			if !ok {
				break
			}
			b.WriteRune(ch)
			if ch == '}' {
				closed = true
				break
			}
		}
		if !closed {
			return "", parseErr(line, col, errs.Lexical, "missing '}', unterminated quantifier")
		}
	}

	if r.match('?') {
		b.WriteByte('?')
	}

	return b.String(), nil
}

func parseGroupStart(r *reader, line, col int) (*check.Check, error) {
	chk := check.New(check.KindGroupStart)
	chk.Capturing = true

	if !r.match('?') {
		return chk, nil
	}

	switch {
	case r.match(':'):
		chk.Capturing = false
		return chk, nil
	case r.match('\''):
		name, ok := r.getUntil('\'')
		if !ok {
			return nil, parseErr(line, col, errs.Lexical, "unterminated group name, missing \"'\"")
		}
		if !validCaptureName(name) {
			return nil, parseErr(line, col, errs.Semantic, "invalid capture name %q", name)
		}
		chk.Name = name
		return chk, nil
	default:
		c, _ := r.peek()
		return nil, parseErr(line, col, errs.Grammatical, "malformed group start near %q", c)
	}
}

type argKind uint8

const (
	argBareword argKind = iota
	argString
	argCapture
)

func parseAngleCheck(r *reader, line, col int) (*check.Check, error) {
	r.skipInlineSpace()
	prefix := r.scanBareword()
	if prefix == "" {
		return nil, parseErr(line, col, errs.Grammatical, "missing check prefix")
	}

	var args []string
	var kinds []argKind

	for {
		r.skipInlineSpace()
		c, ok := r.peek()
		if !ok {
			return nil, parseErr(line, col, errs.Lexical, "missing '>', unterminated check")
		}
		if c == '>' {
			r.next()
			break
		}

		arg, kind, err := scanArg(r, line, col)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		kinds = append(kinds, kind)
	}

	endLine, endCol := r.position()
	return buildAngleCheck(prefix, args, kinds, line, col, endLine, endCol)
}

func scanArg(r *reader, checkLine, checkCol int) (string, argKind, error) {
	c, _ := r.peek()
	switch c {
	case '"':
		r.next()
		body, ok := r.getUntilUnescaped('"')
		if !ok {
			return "", 0, parseErr(checkLine, checkCol, errs.Lexical, "unterminated string literal")
		}
		s, err := unquoteString(body)
		if err != nil {
			return "", 0, parseErr(checkLine, checkCol, errs.Semantic, "invalid string literal: %v", err)
		}
		return s, argString, nil
	case '\'':
		r.next()
		body, ok := r.getUntil('\'')
		if !ok {
			return "", 0, parseErr(checkLine, checkCol, errs.Lexical, "unterminated capture reference")
		}
		return body, argCapture, nil
	default:
		word := r.scanBareword()
		if word == "" {
			return "", 0, parseErr(checkLine, checkCol, errs.Grammatical, "expected an argument")
		}
		return word, argBareword, nil
	}
}

// getUntilUnescaped is like getUntil but treats "\\" + delim as a
// literal occurrence rather than a terminator, so a quoted string may
// contain an escaped quote.
func (r *reader) getUntilUnescaped(delim rune) (string, bool) {
	start := r.pos
	for {
		c, ok := r.next()
		if !ok {
			return "", false
		}
		if c == '\\' {
			if _, ok := r.next(); !ok {
				return "", false
			}
			continue
		}
		if c == delim {
			return r.src[start : r.pos-1], true
		}
	}
}

func buildAngleCheck(prefix string, args []string, kinds []argKind, line, col, endLine, endCol int) (*check.Check, error) {
	switch prefix {
	case "nop":
		if len(args) != 0 {
			return nil, parseErr(endLine, endCol, errs.Grammatical, "nop takes no arguments")
		}
		return check.New(check.KindNoOp), nil

	case "op":
		switch len(args) {
		case 1:
			m, err := resolveMatcherArg(args[0], kinds[0], line, col)
			if err != nil {
				return nil, err
			}
			chk := check.New(check.KindOpCode)
			chk.Matcher = m
			return chk, nil
		case 2:
			m, err := resolveMatcherArg(args[0], kinds[0], line, col)
			if err != nil {
				return nil, err
			}
			lit, err := resolveLiteralArg(args[1], kinds[1], line, col)
			if err != nil {
				return nil, err
			}
			chk := check.New(check.KindOpCodeOperand)
			chk.Matcher = m
			chk.Literal = lit
			return chk, nil
		default:
			return nil, parseErr(endLine, endCol, errs.Grammatical, "op takes 1 or 2 arguments, got %d", len(args))
		}

	case "cap":
		switch len(args) {
		case 1:
			m, err := resolveMatcherArg(args[0], kinds[0], line, col)
			if err != nil {
				return nil, err
			}
			chk := check.New(check.KindCaptureOperand)
			chk.Matcher = m
			return chk, nil
		case 2:
			m, err := resolveMatcherArg(args[0], kinds[0], line, col)
			if err != nil {
				return nil, err
			}
			if kinds[1] != argCapture {
				return nil, parseErr(line, col, errs.Grammatical, "cap's second argument must be 'name'")
			}
			if isDigits(args[1]) {
				return nil, parseErr(line, col, errs.Semantic, "cap capture name must not be digit-only")
			}
			if !validCaptureName(args[1]) {
				return nil, parseErr(line, col, errs.Semantic, "invalid capture name %q", args[1])
			}
			chk := check.New(check.KindCaptureOperand)
			chk.Matcher = m
			chk.CaptureName = args[1]
			return chk, nil
		default:
			return nil, parseErr(endLine, endCol, errs.Grammatical, "cap takes 1 or 2 arguments, got %d", len(args))
		}

	case "ceq":
		if len(args) != 2 {
			return nil, parseErr(endLine, endCol, errs.Grammatical, "ceq takes 2 arguments, got %d", len(args))
		}
		m, err := resolveMatcherArg(args[0], kinds[0], line, col)
		if err != nil {
			return nil, err
		}
		if kinds[1] != argCapture {
			return nil, parseErr(line, col, errs.Grammatical, "ceq's second argument must be 'name_or_index'")
		}
		ref := check.Ref{Name: args[1]}
		if isDigits(args[1]) {
			idx, _ := strconv.Atoi(args[1])
			ref = check.Ref{Index: idx, ByIndex: true}
		} else if !validCaptureName(args[1]) {
			return nil, parseErr(line, col, errs.Semantic, "invalid capture reference %q", args[1])
		}
		chk := check.New(check.KindEqualsOperand)
		chk.Matcher = m
		chk.EqualsRef = ref
		return chk, nil

	case "fld", "mth", "typ", "cls":
		if len(args) != 2 {
			return nil, parseErr(endLine, endCol, errs.Grammatical, "%s takes 2 arguments, got %d", prefix, len(args))
		}
		m, err := resolveMatcherArg(args[0], kinds[0], line, col)
		if err != nil {
			return nil, err
		}
		if kinds[1] != argString {
			return nil, parseErr(line, col, errs.Grammatical, "%s's second argument must be \"pattern\"", prefix)
		}

		kind, memberKind := memberKindFor(prefix)
		compiled, err := member.Compile(args[1], kind)
		if err != nil {
			return nil, parseErr(line, col, errs.Semantic, "invalid member-name pattern: %v", err)
		}

		chk := check.New(check.KindMemberName)
		chk.Matcher = m
		chk.MemberKind = memberKind
		chk.Pattern = args[1]
		chk.Member = compiled
		return chk, nil

	default:
		return nil, parseErr(line, col, errs.Grammatical, "unknown check prefix %q", prefix)
	}
}

func memberKindFor(prefix string) (member.Kind, cil.MemberKind) {
	switch prefix {
	case "fld":
		return member.KindField, cil.MemberField
	case "mth":
		return member.KindMethod, cil.MemberMethod
	case "typ":
		return member.KindType, cil.MemberType
	default: // "cls" — a callsite reference, named for readability in the DSL
		return member.KindCallSite, cil.MemberCallSite
	}
}

func resolveMatcherArg(arg string, kind argKind, line, col int) (cil.Matcher, error) {
	if kind != argBareword {
		return nil, parseErr(line, col, errs.Grammatical, "expected an opcode or family name, got %q", arg)
	}
	normalized := strings.ReplaceAll(strings.ToLower(arg), "_", ".")
	m, err := cil.ResolveMatcher(normalized)
	if err != nil {
		return nil, parseErr(line, col, errs.Semantic, "%v", err)
	}
	return m, nil
}

func resolveLiteralArg(arg string, kind argKind, line, col int) (cil.Operand, error) {
	switch kind {
	case argString:
		return cil.String(arg), nil
	case argBareword:
		op, err := parseNumericLiteral(arg)
		if err != nil {
			return cil.Nil, parseErr(line, col, errs.Semantic, "invalid operand literal %q: %v", arg, err)
		}
		return op, nil
	default:
		return cil.Nil, parseErr(line, col, errs.Grammatical, "expected a literal, got a capture reference")
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
