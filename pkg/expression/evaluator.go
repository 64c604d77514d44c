package expression

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// InputName is the identifier variable expressions use for their argument
const InputName = "v"

// AllowedBuiltins lists the expr-lang builtins left enabled. Every other
// builtin, including the predicates (map, filter, reduce, sum...), is
// rejected at compile time.
var AllowedBuiltins = []string{
	"len", "upper", "lower", "trim", "trimPrefix", "trimSuffix",
	"replace", "repeat", "split", "join", "hasPrefix", "hasSuffix",
	"indexOf", "lastIndexOf", "int", "float", "string",
	"abs", "ceil", "floor", "round", "max", "min",
}

type kind int

const (
	kindConstant kind = iota
	kindVariable
)

type cacheKey struct {
	kind kind
	expr string
}

// Evaluator compiles and runs descriptor expressions. Compiled programs are
// cached, so evaluating the same expression for several templates is cheap.
// An Evaluator is safe for concurrent use.
type Evaluator struct {
	mu       sync.Mutex
	programs map[cacheKey]*vm.Program
}

// NewEvaluator creates an Evaluator with an empty program cache
func NewEvaluator() *Evaluator {
	return &Evaluator{programs: make(map[cacheKey]*vm.Program)}
}

// EvaluateConstant evaluates a parameterless expression
func (e *Evaluator) EvaluateConstant(expression string) (string, error) {
	return e.evaluate(kindConstant, expression, map[string]interface{}{})
}

// EvaluateVariable evaluates expression with input bound to v
func (e *Evaluator) EvaluateVariable(expression, input string) (string, error) {
	return e.evaluate(kindVariable, expression, map[string]interface{}{InputName: input})
}

func (e *Evaluator) evaluate(k kind, expression string, env map[string]interface{}) (string, error) {
	program, err := e.compile(k, expression)
	if err != nil {
		return "", err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrExpression, "cannot evaluate %q", expression).
			WithDetail("expression", expression)
	}

	return ToString(out), nil
}

func (e *Evaluator) compile(k kind, expression string) (*vm.Program, error) {
	key := cacheKey{kind: k, expr: expression}

	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.programs[key]; ok {
		return program, nil
	}

	if err := newGrammar().check(expression); err != nil {
		return nil, err
	}

	env := map[string]interface{}{}
	if k == kindVariable {
		env[InputName] = ""
	}

	program, err := expr.Compile(expression, options(env)...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExpression, "cannot compile %q", expression).
			WithDetail("expression", expression)
	}

	e.programs[key] = program
	return program, nil
}

func options(env map[string]interface{}) []expr.Option {
	opts := []expr.Option{
		expr.Env(env),
		expr.DisableAllBuiltins(),
	}
	for _, name := range AllowedBuiltins {
		opts = append(opts, expr.EnableBuiltin(name))
	}
	for _, fn := range functions {
		opts = append(opts, expr.Function(fn.name, fn.call, fn.signature))
	}
	return opts
}

// ToString converts an expression result to the text substituted into
// templates. Integral floats lose their fractional part so that
// "int(v) * 1.0" style arithmetic still renders as "42".
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
