// Package families loads an optional Starlark family-definition script
// that declares extra multi-opcode families beyond cil's built-in
// table, using go.starlark.net the same way re.go embeds a scripting
// surface: a small starlark.StringDict of predeclared builtins bound to
// a starlark.Thread, with no module value of its own since a
// family-definition script only ever calls a single top-level builtin.
//
// A family-definition script looks like:
//
//	family("typecheck", opcodes = ["box", "unbox", "unbox.any", "castclass", "isinst"])
//	family("elem", opcodes = ["ldelem", "stelem"])
//
// Each call registers one family into cil's runtime registry
// (cil.RegisterFamily), immediately available to every pattern compiled
// afterwards via the usual "%name" DSL syntax.
package families

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"

	"github.com/ilrx/ilregex/cil"
)

// Load evaluates a family-definition script's source against filename
// (used only for error messages and stack traces), registering every
// family(...) call it makes.
func Load(filename string, src []byte) error {
	thread := &starlark.Thread{Name: "ilregex-families"}
	predeclared := starlark.StringDict{
		"family": starlark.NewBuiltin("family", familyBuiltin),
	}
	_, err := starlark.ExecFile(thread, filename, src, predeclared)
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return fmt.Errorf("families: %s", evalErr.Backtrace())
		}
		return fmt.Errorf("families: %w", err)
	}
	return nil
}

// LoadFile reads and loads a family-definition script from disk,
// conventionally a ".star" file.
func LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("families: %w", err)
	}
	return Load(path, src)
}

// familyBuiltin implements the family(name, opcodes=[...], semantic=...)
// predeclared function, translating its Starlark arguments into a
// cil.RegisterFamily call.
func familyBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name       string
		opcodesVal starlark.Value
		semantic   string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"opcodes", &opcodesVal,
		"semantic?", &semantic,
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("family: name must not be empty")
	}

	opcodes, ok := opcodesVal.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("family %q: opcodes must be a list, got %s", name, opcodesVal.Type())
	}

	ops := make([]cil.OpCode, 0, 4)
	iter := opcodes.Iterate()
	defer iter.Done()
	var v starlark.Value
	for iter.Next(&v) {
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("family %q: opcodes must be strings, got %s", name, v.Type())
		}
		op, ok := cil.ParseOpCode(s)
		if !ok {
			return nil, fmt.Errorf("family %q: unknown opcode %q", name, s)
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("family %q: opcodes must not be empty", name)
	}

	sem, err := parseSemantic(semantic)
	if err != nil {
		return nil, fmt.Errorf("family %q: %w", name, err)
	}

	cil.RegisterFamily(name, sem, ops)
	return starlark.None, nil
}

func parseSemantic(s string) (cil.Semantic, error) {
	switch s {
	case "", "none":
		return cil.SemanticNone, nil
	case "int32":
		return cil.SemanticInt32, nil
	case "param":
		return cil.SemanticParam, nil
	case "variable":
		return cil.SemanticVariable, nil
	default:
		return cil.SemanticNone, fmt.Errorf("unknown semantic %q", s)
	}
}
