// Package member implements §4.4's member-name matching: deriving a
// textual regular expression from a check's authored pattern and testing
// a member's fully-qualified name against it.
//
// This is the one place the engine matches characters rather than
// instructions, so it is grounded on the teacher's own choice of engine
// for that job: github.com/dlclark/regexp2, used the same way
// regex.go's fallback branch uses it — real Perl/.NET-style backtracking
// syntax (needed because a "?"-prefixed pattern is handed to the engine
// verbatim, and CIL member signatures are naturally expressed with
// lookaheads a plain regexp.Regexp cannot compile).
package member

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind mirrors cil.MemberKind without importing the cil package, keeping
// this package a leaf the way the teacher's regexp2-fallback branch is a
// leaf under regex.go.
type Kind uint8

const (
	KindField Kind = iota
	KindMethod
	KindType
	KindCallSite
)

// Regex is a compiled member-name check (§4.4).
type Regex struct {
	source string
	re     *regexp2.Regexp
}

// Compile derives and compiles the regular expression for pattern under
// kind, per §4.4:
//
//  1. If pattern begins with '?', the remainder is used verbatim as the
//     regex.
//  2. Otherwise pattern is a literal identifier: the derived regex is a
//     leading anchor "(?:^| |\.|::)" (start, space, dot, or the "::"
//     type/member separator of a CIL full name), the escaped literal, and
//     a per-kind tail.
func Compile(pattern string, kind Kind) (*Regex, error) {
	source := derive(pattern, kind)

	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("member: invalid pattern %q: %w", pattern, err)
	}

	return &Regex{source: source, re: re}, nil
}

// Source returns the derived regular expression text, useful for
// diagnostics: Pattern.String regenerates the author's original pattern,
// not this derived form, so this is the way to inspect what actually
// runs.
func (r *Regex) Source() string { return r.source }

// MatchString reports whether name satisfies the derived pattern.
func (r *Regex) MatchString(name string) bool {
	m, err := r.re.MatchString(name)
	return err == nil && m
}

func derive(pattern string, kind Kind) string {
	if strings.HasPrefix(pattern, "?") {
		return pattern[1:]
	}

	var b strings.Builder
	b.WriteString(`(?:^| |\.|::)`)
	b.WriteString(escapeLiteral(pattern))
	b.WriteString(tail(kind))
	return b.String()
}

func tail(kind Kind) string {
	switch kind {
	case KindType:
		return `(?:<[A-Za-z_]\w>)?`
	case KindMethod:
		return `(?:<[A-Za-z_]\w>)?\(.*\)`
	default: // field, callsite
		return ""
	}
}

// specialChars are the bytes escapeLiteral backslash-escapes so a literal
// identifier matches itself against the derived regexp2 pattern: the
// regex metacharacters plus whitespace and '#', since regexp2 (like .NET
// regex) treats both as significant under free-spacing/comment syntax.
const specialChars = `()[]{}?*+-|^$\.&~# ` + "\t\n\r\v\f"

// escapeLiteral returns a regex fragment matching the literal text s,
// escaping every metacharacter it contains. Operates byte-wise; since
// every entry in specialChars is a single ASCII byte, the continuation
// bytes of a multi-byte UTF-8 rune in s never match and pass through
// unescaped.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, specialChars) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(specialChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
