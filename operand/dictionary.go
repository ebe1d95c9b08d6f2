// Package operand implements the OperandDictionary of §4.9: a validated
// name -> cil.Operand mapping that seeds named operands before a match
// (so EqualsOperand checks can resolve a backreference that isn't bound
// by an earlier in-pattern capture) and can be bulk-populated from a
// completed match's named operands.
//
// Grounded on util/bitarray.go's validate-on-insert style (a small
// mutable collection that rejects invalid input at the point of
// insertion rather than deferring to a later pass) and the small
// validated-map helpers in regex/source.go.
package operand

import (
	"regexp"
	"sync"

	"github.com/ilrx/ilregex/cil"
	"github.com/ilrx/ilregex/internal/errs"
)

// nameRe is the capture-name regex shared with §4.3/§4.9:
// ^[A-Za-z_]\w*$.
var nameRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// ValidName reports whether name is an acceptable operand-dictionary or
// capture name.
func ValidName(name string) bool { return nameRe.MatchString(name) }

// Dictionary is a mutable name -> cil.Operand mapping (§3
// "OperandDictionary"). The zero value is not usable; construct with
// New.
//
// Per §5, a Dictionary is a mutable mapping and external callers are
// responsible for not mutating one in use by a concurrent match; the
// mutex here only guards against the dictionary's own methods racing
// each other, not against a match reading it mid-mutation.
type Dictionary struct {
	mu   sync.RWMutex
	vals map[string]cil.Operand
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{vals: make(map[string]cil.Operand)}
}

// Add binds name to value, validating name against the capture-name
// regex per §4.9.
func (d *Dictionary) Add(name string, value cil.Operand) error {
	if !ValidName(name) {
		return &errs.UsageError{Kind: errs.UnknownName, Message: "invalid operand name " + name}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vals[name] = value
	return nil
}

// Get looks up name, reporting whether it was bound.
func (d *Dictionary) Get(name string) (cil.Operand, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.vals[name]
	return v, ok
}

// Names returns the bound names. Order is unspecified.
func (d *Dictionary) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.vals))
	for k := range d.vals {
		out = append(out, k)
	}
	return out
}

// NamedOperands is the minimal view of a completed match's named operand
// captures that AddOperands/AddMatch need, satisfied by
// ilregex.MatchResult without operand importing the root package (which
// would cycle, since the root package imports operand for its public
// OperandDictionary alias).
type NamedOperands interface {
	OperandNames() []string
	NamedOperand(name string) (cil.Operand, bool)
}

// AddOperands bulk-imports every named operand from src.
func (d *Dictionary) AddOperands(src NamedOperands) error {
	for _, name := range src.OperandNames() {
		v, ok := src.NamedOperand(name)
		if !ok {
			continue
		}
		if err := d.Add(name, v); err != nil {
			return err
		}
	}
	return nil
}

// AddMatch is an alias for AddOperands, named to match §6.2's
// `add_match(match)` entry point; a completed MatchResult satisfies
// NamedOperands directly.
func (d *Dictionary) AddMatch(m NamedOperands) error {
	return d.AddOperands(m)
}
