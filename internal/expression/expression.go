// Package expression compiles single-variable formulas into callable functions.
package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// Variable is the name of the free variable in a formula.
const Variable = "x"

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("expression is empty")

// Func is a real function of one variable. Points where evaluation fails yield NaN.
type Func func(x float64) float64

type unary func(float64) float64

var unaryFuncs = map[string]unary{
	"sqrt":   math.Sqrt,
	"exp":    math.Exp,
	"ln":     math.Log,
	"log":    math.Log10,
	"abs":    math.Abs,
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"floor":  math.Floor,
	"ceil":   math.Ceil,
	"round":  math.Round,
	"signum": signum,
}

// Parse compiles text into a Func. The formula may use x, pi, e, the usual
// arithmetic operators (^ and ** are powers, % is the float remainder) and the
// functions listed in unaryFuncs plus min and max. All arithmetic is float64.
func Parse(text string) (Func, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmpty
	}
	env := map[string]any{
		Variable: 0.0,
		"pi":     math.Pi,
		"e":      math.E,
	}
	program, err := expr.Compile(text, compileOptions(env)...)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", text, err)
	}
	return bind(program, env), nil
}

func compileOptions(env map[string]any) []expr.Option {
	opts := []expr.Option{
		expr.Env(env),
		expr.AsFloat64(),
		expr.DisableAllBuiltins(),
		expr.Patch(realLiterals{}),
		expr.Function("fmod", wrapBinary("fmod", math.Mod), new(func(float64, float64) float64)),
		expr.Operator("%", "fmod"),
	}
	for name, fn := range unaryFuncs {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn), new(func(float64) float64)))
	}
	opts = append(opts,
		expr.Function("min", wrapBinary("min", math.Min), new(func(float64, float64) float64)),
		expr.Function("max", wrapBinary("max", math.Max), new(func(float64, float64) float64)),
	)
	return opts
}

// realLiterals turns integer literals into floats so every operation is
// carried out in float64 and integer products cannot wrap around.
type realLiterals struct{}

func (realLiterals) Visit(node *ast.Node) {
	n, ok := (*node).(*ast.IntegerNode)
	if !ok {
		return
	}
	lit := &ast.FloatNode{Value: float64(n.Value)}
	lit.SetLocation(n.Location())
	*node = lit
}

// bind closes over a private env and VM; the returned Func is not safe for
// concurrent use.
func bind(program *vm.Program, env map[string]any) Func {
	var machine vm.VM
	return func(x float64) float64 {
		env[Variable] = x
		out, err := machine.Run(program, env)
		if err != nil {
			return math.NaN()
		}
		v, ok := toFloat(out)
		if !ok {
			return math.NaN()
		}
		return v
	}
}

func wrapUnary(name string, fn unary) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		v, ok := toFloat(params[0])
		if !ok {
			return nil, fmt.Errorf("%s expects a number", name)
		}
		return fn(v), nil
	}
}

func wrapBinary(name string, fn func(a, b float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(params))
		}
		a, okA := toFloat(params[0])
		b, okB := toFloat(params[1])
		if !okA || !okB {
			return nil, fmt.Errorf("%s expects numbers", name)
		}
		return fn(a, b), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return v
	}
}
