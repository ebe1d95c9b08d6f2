// Package dsl implements the pattern text language of §4.3: a reader
// that tracks 1-based line/column as it scans, a recursive-descent
// parser that turns the text into a flat check sequence (fusing each
// quantifier onto its atom as it scans), and the pattern builder (Build)
// that rejects any quantifier left unfused and yields an immutable
// Pattern.
package dsl

import "unicode/utf8"

// reader is a position-tracking cursor over pattern text, grounded on
// the teacher's syntax.source (read/peek/match/getUntil), extended with
// line/column bookkeeping since the DSL's errors are positional (§4.3).
type reader struct {
	src  string
	pos  int
	line int
	col  int
}

func newReader(src string) *reader {
	return &reader{src: src, line: 1, col: 1}
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) position() (line, col int) { return r.line, r.col }

func (r *reader) peek() (rune, bool) {
	if r.eof() {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(r.src[r.pos:])
	return c, true
}

func (r *reader) next() (rune, bool) {
	if r.eof() {
		return 0, false
	}
	c, size := utf8.DecodeRuneInString(r.src[r.pos:])
	r.pos += size
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c, true
}

func (r *reader) match(c rune) bool {
	if p, ok := r.peek(); ok && p == c {
		r.next()
		return true
	}
	return false
}

// getUntil consumes runes up to and including delim, returning the
// prefix without delim. Reports false if delim is never found.
func (r *reader) getUntil(delim rune) (string, bool) {
	start := r.pos
	for {
		c, ok := r.next()
		if !ok {
			return "", false
		}
		if c == delim {
			return r.src[start : r.pos-1], true
		}
	}
}

func isInlineSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func (r *reader) skipInlineSpace() {
	for {
		c, ok := r.peek()
		if !ok || !isInlineSpace(c) {
			return
		}
		r.next()
	}
}

// scanBareword reads a run of characters that are neither whitespace nor
// one of the structural delimiters, used for prefixes, opcode names and
// unquoted literal arguments.
func (r *reader) scanBareword() string {
	start := r.pos
	for {
		c, ok := r.peek()
		if !ok || isInlineSpace(c) || c == '>' {
			break
		}
		r.next()
	}
	return r.src[start:r.pos]
}
