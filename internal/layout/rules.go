package layout

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
)

// rules compiles visibility expressions once and caches the programs.
type rules struct {
	env      *cel.Env
	programs sync.Map
}

func newRules() (*rules, error) {
	env, err := cel.NewEnv(cel.Variable("form", cel.MapType(cel.StringType, cel.StringType)))
	if err != nil {
		return nil, err
	}
	return &rules{env: env}, nil
}

func (r *rules) program(expr string) (cel.Program, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("expression required")
	}
	if cached, ok := r.programs.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	ast, issues := r.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New("expression must be boolean")
	}
	prg, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	r.programs.Store(expr, prg)
	return prg, nil
}

func (r *rules) eval(expr string, form map[string]string) (bool, error) {
	prg, err := r.program(expr)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(map[string]any{"form": form})
	if err != nil {
		return false, err
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("expression did not evaluate to a boolean")
	}
	return v, nil
}
