package dsl

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ilrx/ilregex/cil"
)

// validCaptureName reports whether name matches the capture-name regex
// of §4.3/§4.9: ^[A-Za-z_]\w*$.
func validCaptureName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// unquoteString decodes a double-quoted string body (the delimiters
// already stripped) with C-style escapes.
func unquoteString(body string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", errBadEscape
		}
		e := body[i+1]
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			return "", errBadEscape
		}
		i += 2
	}
	return b.String(), nil
}

var errBadEscape = errors.New("dsl: bad string escape")

// numericTags are the type suffixes of the literal grammar in §4.3,
// ordered so the longest match ("sb") is tried before its suffix ("b").
var numericTags = []string{"sb", "l", "b", "f", "d"}

// parseNumericLiteral parses a bare number with an optional sign,
// fractional part, and trailing type tag (§4.3): no tag ⇒ int32 (float32
// when the number has a '.' or an exponent); "l" ⇒ int64; "b" ⇒ uint8;
// "sb" ⇒ int8; "f" ⇒ float32; "d" ⇒ float64.
func parseNumericLiteral(s string) (cil.Operand, error) {
	tag := ""
	body := s
	for _, t := range numericTags {
		if strings.HasSuffix(s, t) {
			candidate := strings.TrimSuffix(s, t)
			if candidate != "" && (candidate[len(candidate)-1] == '.' ||
				('0' <= candidate[len(candidate)-1] && candidate[len(candidate)-1] <= '9')) {
				tag = t
				body = candidate
				break
			}
		}
	}

	switch tag {
	case "f":
		v, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return cil.Nil, err
		}
		return cil.Float32(float32(v)), nil
	case "d":
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return cil.Nil, err
		}
		return cil.Float64(v), nil
	case "l":
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return cil.Nil, err
		}
		return cil.Int64(v), nil
	case "b":
		v, err := strconv.ParseUint(body, 10, 8)
		if err != nil {
			return cil.Nil, err
		}
		return cil.UInt8(uint8(v)), nil
	case "sb":
		v, err := strconv.ParseInt(body, 10, 8)
		if err != nil {
			return cil.Nil, err
		}
		return cil.Int8(int8(v)), nil
	default:
		if strings.ContainsAny(body, ".eE") {
			v, err := strconv.ParseFloat(body, 32)
			if err != nil {
				return cil.Nil, err
			}
			return cil.Float32(float32(v)), nil
		}
		v, err := strconv.ParseInt(body, 10, 32)
		if err != nil {
			return cil.Nil, err
		}
		return cil.Int32(int32(v)), nil
	}
}
