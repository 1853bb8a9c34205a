package lang

import (
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Operands of a kernel program. A unary kernel ignores R.
type kernelEnv struct {
	L int64 `expr:"l"`
	R int64 `expr:"r"`
}

// kernel is one compiled arithmetic operation.
type kernel struct {
	program *vm.Program
	guard   func(kernelEnv) error
	name    string
	arity   int
}

// kernelSource describes a kernel before compilation.
type kernelSource struct {
	source string
	guard  func(kernelEnv) error
	arity  int
}

var binarySource = map[string]kernelSource{
	"+": {source: "l + r", arity: 2},
	"-": {source: "l - r", arity: 2},
	"*": {source: "l * r", arity: 2},
	"/": {source: "quo(l, r)", arity: 2, guard: nonZeroDivisor},
	"%": {source: "l % r", arity: 2, guard: nonZeroDivisor},
	"^": {source: "ipow(l, r)", arity: 2, guard: nonNegativeExponent},
}

var functionSource = map[string]kernelSource{
	"pow":  {source: "ipow(l, r)", arity: 2, guard: nonNegativeExponent},
	"log":  {source: "int(logb(l, r))", arity: 2},
	"sqrt": {source: "int(sqrt(l))", arity: 1},
	"ln":   {source: "int(ln(l))", arity: 1},
	"abs":  {source: "abs(l)", arity: 1},
}

// kernels compiles every operator and function once per process.
var kernels = sync.OnceValues(
	func() (binary, function map[string]*kernel) {
		return compileKernels(binarySource), compileKernels(functionSource)
	},
)

func compileKernels(src map[string]kernelSource) map[string]*kernel {
	out := make(map[string]*kernel, len(src))

	for name, ks := range src {
		program, err := expr.Compile(ks.source, kernelOptions()...)
		if err != nil {
			panic("internal error: compile " + name + " kernel: " + err.Error())
		}

		out[name] = &kernel{
			program: program,
			guard:   ks.guard,
			name:    name,
			arity:   ks.arity,
		}
	}

	return out
}

func kernelOptions() []expr.Option {
	return []expr.Option{
		expr.Env(kernelEnv{}),
		expr.Function(
			"quo",
			func(params ...any) (any, error) {
				return params[0].(int64) / params[1].(int64), nil
			},
			new(func(int64, int64) int64),
		),
		expr.Function(
			"ipow",
			func(params ...any) (any, error) {
				return ipow(params[0].(int64), params[1].(int64))
			},
			new(func(int64, int64) int64),
		),
		expr.Function(
			"sqrt",
			func(params ...any) (any, error) {
				return finite(math.Sqrt(float64(params[0].(int64))))
			},
			new(func(int64) float64),
		),
		expr.Function(
			"ln",
			func(params ...any) (any, error) {
				return finite(math.Log(float64(params[0].(int64))))
			},
			new(func(int64) float64),
		),
		expr.Function(
			"logb",
			func(params ...any) (any, error) {
				return finite(logb(params[0].(int64), params[1].(int64)))
			},
			new(func(int64, int64) float64),
		),
	}
}

// Evaluate resolves a one-operator arithmetic expression against vars.
//
// Two shapes are recognized, after splitting on whitespace:
//
//	left op right     op is one of + - * / ^ %
//	fn arg [arg]      fn is pow or log (two args), sqrt, ln or abs (one arg)
//
// Each operand is a literal integer or the exact name of an Int variable.
//
// Any other shape, an unresolved operand, a negative exponent, or a result
// outside the int32 range returns a non-fatal error: the text is not a valid
// expression. Division or remainder by zero returns [ErrDivideByZero], which
// is fatal.
func Evaluate(expression string, vars Lookup) (int32, error) {
	k, args, err := selectKernel(strings.Fields(expression))
	if err != nil {
		return 0, err
	}

	var env kernelEnv

	operand := [2]*int64{&env.L, &env.R}

	for i, arg := range args {
		n, err := resolveOperand(arg, vars)
		if err != nil {
			return 0, err
		}

		*operand[i] = int64(n)
	}

	if k.guard != nil {
		if err := k.guard(env); err != nil {
			return 0, err.(*Error).With(slog.String("op", k.name))
		}
	}

	out, err := expr.Run(k.program, env)
	if err != nil {
		return 0, ErrNotExpression.Wrap(err).With(slog.String("op", k.name))
	}

	n, ok := toInt64(out)
	if !ok {
		return 0, ErrNotExpression.Wrapf("unexpected result %v", out)
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, ErrOverflow.Wrapf("%d", n).With(slog.String("op", k.name))
	}

	return int32(n), nil
}

// selectKernel matches fields against the binary form first, then the
// function-call form.
func selectKernel(fields []string) (*kernel, []string, error) {
	binary, function := kernels()

	if len(fields) == 3 {
		if k, ok := binary[fields[1]]; ok {
			return k, []string{fields[0], fields[2]}, nil
		}
	}

	if len(fields) > 0 {
		if k, ok := function[fields[0]]; ok && len(fields) == k.arity+1 {
			return k, fields[1:], nil
		}
	}

	return nil, nil, ErrNotExpression
}

// resolveOperand parses tok as a literal integer or looks it up by exact name.
func resolveOperand(tok string, vars Lookup) (int32, error) {
	if n, ok := parseInt(tok); ok {
		return n, nil
	}

	if vars == nil {
		return 0, ErrVariableNotFound.Wrapf("%q", tok)
	}

	v, ok := vars.Get(tok)
	if !ok {
		return 0, ErrVariableNotFound.Wrapf("%q", tok)
	}

	n, ok := v.Int()
	if !ok {
		return 0, ErrNotInteger.Wrapf("%q", tok)
	}

	return n, nil
}

func nonZeroDivisor(env kernelEnv) error {
	if env.R == 0 {
		return ErrDivideByZero
	}

	return nil
}

func nonNegativeExponent(env kernelEnv) error {
	if env.R < 0 {
		return ErrNegativeExponent.Wrapf("%d", env.R)
	}

	return nil
}

// ipow computes base**exp by squaring. Both arguments are int32 values, so
// every intermediate product fits in int64 until it is rejected for leaving
// the int32 range.
func ipow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, ErrNegativeExponent
	}

	result := int64(1)

	for exp > 0 {
		if exp&1 == 1 {
			result *= base
			if !inInt32(result) {
				return 0, ErrOverflow
			}
		}

		exp >>= 1

		if exp > 0 {
			base *= base
			if !inInt32(base) {
				return 0, ErrOverflow
			}
		}
	}

	return result, nil
}

// logb returns the base-b logarithm of x. Base 2 uses [math.Log2], which is
// exact for powers of two.
func logb(x, b int64) float64 {
	if b == 2 {
		return math.Log2(float64(x))
	}

	return math.Log(float64(x)) / math.Log(float64(b))
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrDomain
	}

	return f, nil
}

func inInt32(n int64) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}

		return int64(n), true
	default:
		return 0, false
	}
}
