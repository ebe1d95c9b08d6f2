// Package check defines the atoms a compiled pattern is made of: the
// Quantifier value type (§4.2) and the Check tagged union (§3/§4.3).
package check

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unbounded is the sentinel maximum representing "no upper bound" (§3).
const Unbounded = math.MaxInt

// Quantifier is the (min, max, greedy) value type of §4.2.
type Quantifier struct {
	Min    int
	Max    int
	Greedy bool
}

// ExactlyOne is the canonical "no quantifier" identity value.
var ExactlyOne = Quantifier{Min: 1, Max: 1, Greedy: true}

// IsOne reports whether q requires exactly one match, i.e. is the
// identity quantifier regardless of its Greedy flag.
func (q Quantifier) IsOne() bool { return q.Min == 1 && q.Max == 1 }

// IsIdentity reports whether q is indistinguishable from ExactlyOne. The
// greedy flag is ignored when Min == Max (§4.2: "the greedy flag is
// ignored when min == max"), so a Quantifier{1,1,false} is still the
// identity.
func (q Quantifier) IsIdentity() bool { return q.IsOne() }

// EffectiveGreedy reports the quantifier's greediness, honoring §4.2's
// rule that greediness is meaningless (and ignored) when Min == Max.
func (q Quantifier) EffectiveGreedy() bool {
	if q.Min == q.Max {
		return true
	}
	return q.Greedy
}

// Swapped returns q with its greediness inverted, for the SwapGreedy
// runtime option (§4.7).
func (q Quantifier) Swapped() Quantifier {
	q.Greedy = !q.Greedy
	return q
}

// Validate checks the invariants of §3: 0 <= min <= max, and (min,max) is
// never (0,0).
func (q Quantifier) Validate() error {
	if q.Min < 0 {
		return fmt.Errorf("check: quantifier min %d must be >= 0", q.Min)
	}
	if q.Min > q.Max {
		return fmt.Errorf("check: quantifier min %d exceeds max %d", q.Min, q.Max)
	}
	if q.Min == 0 && q.Max == 0 {
		return fmt.Errorf("check: quantifier (0,0) is not permitted")
	}
	return nil
}

// String formats q back into its DSL literal form (§4.3), used by
// Pattern.String for the textual round-trip invariant (§8). It always
// prefers the canonical shorthand (?, *, +) over the equivalent {n,m}
// form.
func (q Quantifier) String() string {
	var b strings.Builder

	switch {
	case q.Min == 0 && q.Max == 1:
		b.WriteByte('?')
	case q.Min == 0 && q.Max == Unbounded:
		b.WriteByte('*')
	case q.Min == 1 && q.Max == Unbounded:
		b.WriteByte('+')
	case q.Min == q.Max:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(q.Min))
		b.WriteByte('}')
	case q.Max == Unbounded:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(q.Min))
		b.WriteString(",}")
	default:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(q.Min))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(q.Max))
		b.WriteByte('}')
	}

	if !q.Greedy {
		b.WriteByte('?')
	}

	return b.String()
}

// ParseQuantifier parses one of the DSL's quantifier literals (§4.3):
// "?", "*", "+", "{n}", "{n,}", "{n,m}", each optionally suffixed with a
// trailing "?" to invert greediness.
func ParseQuantifier(s string) (Quantifier, error) {
	greedy := true
	if strings.HasSuffix(s, "?") && s != "?" {
		s = s[:len(s)-1]
		greedy = false
	}

	var q Quantifier
	switch {
	case s == "?":
		q = Quantifier{Min: 0, Max: 1, Greedy: greedy}
	case s == "*":
		q = Quantifier{Min: 0, Max: Unbounded, Greedy: greedy}
	case s == "+":
		q = Quantifier{Min: 1, Max: Unbounded, Greedy: greedy}
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		var err error
		q, err = parseBraceQuantifier(s[1:len(s)-1], greedy)
		if err != nil {
			return Quantifier{}, err
		}
	default:
		return Quantifier{}, fmt.Errorf("check: %q is not a valid quantifier", s)
	}

	if err := q.Validate(); err != nil {
		return Quantifier{}, err
	}
	return q, nil
}

func parseBraceQuantifier(body string, greedy bool) (Quantifier, error) {
	parts := strings.SplitN(body, ",", 2)

	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Quantifier{}, fmt.Errorf("check: non-integer quantifier bound %q", parts[0])
	}

	if len(parts) == 1 {
		return Quantifier{Min: min, Max: min, Greedy: greedy}, nil
	}

	maxPart := strings.TrimSpace(parts[1])
	if maxPart == "" {
		return Quantifier{Min: min, Max: Unbounded, Greedy: greedy}, nil
	}

	max, err := strconv.Atoi(maxPart)
	if err != nil {
		return Quantifier{}, fmt.Errorf("check: non-integer quantifier bound %q", maxPart)
	}

	return Quantifier{Min: min, Max: max, Greedy: greedy}, nil
}
