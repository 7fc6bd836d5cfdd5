package postfix

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"unicode"

	"fortio.org/log"
	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. Functions receive their argument
// after it is evaluated and should return NaN rather than panic for
// arguments outside their domain.
type Func func(x float64) float64

// Registry maps function names to functions. A Registry is written while it
// is set up and read during parsing and evaluation. It is safe to use one
// Registry to parse and evaluate concurrently as long as nothing registers
// functions at the same time.
type Registry struct {
	funcs map[string]Func
}

const deg = math.Pi / 180

var builtins = map[string]Func{
	"sin":   func(x float64) float64 { return math.Sin(x * deg) },
	"cos":   func(x float64) float64 { return math.Cos(x * deg) },
	"tan":   func(x float64) float64 { return math.Tan(x * deg) },
	"atan":  math.Atan,
	"log10": math.Log10,
	"log2":  func(x float64) float64 { return math.Log(x) / math.Log(2) },
	"sqrt":  math.Sqrt,
}

// NewRegistry creates a registry holding the default functions. The
// trigonometric functions sin, cos, and tan take their arguments in degrees;
// atan returns radians.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func, len(builtins))}
	for k, v := range builtins {
		r.funcs[k] = v
	}
	return r
}

// EmptyRegistry creates a registry with no functions.
func EmptyRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a function to the registry, replacing any function with the
// same name. Returns r for chaining. Panics if f is nil or if name could not
// be scanned as a single identifier.
func (r *Registry) Register(name string, f Func) *Registry {
	if f == nil {
		panic("postfix: nil function for " + strconv.Quote(name))
	}
	if !isident(name) {
		panic("postfix: invalid function name " + strconv.Quote(name))
	}
	if _, ok := r.funcs[name]; ok {
		log.LogVf("postfix: replacing function %q", name)
	}
	r.funcs[name] = f
	return r
}

// RegisterAll adds a group of functions to the registry. Returns r for
// chaining.
func (r *Registry) RegisterAll(fns map[string]Func) *Registry {
	for k, v := range fns {
		r.Register(k, v)
	}
	return r
}

// Lookup gets a function by name. A nil Registry has no functions.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.funcs[name]
	return f, ok
}

// Has returns whether name is a registered function.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Clone creates a copy of the registry which can be extended independently.
func (r *Registry) Clone() *Registry {
	n := EmptyRegistry()
	if r != nil {
		for k, v := range r.funcs {
			n.funcs[k] = v
		}
	}
	return n
}

func isident(name string) bool {
	for i, c := range name {
		switch {
		case c == '_', unicode.IsLetter(c):
		case i > 0 && unicode.IsDigit(c):
		default:
			return false
		}
	}
	return name != ""
}

// Precise wraps an arbitrary-precision function of one variable into a Func.
// The argument is converted exactly, the function is computed with prec bits,
// and the result is rounded to the nearest float64. f must set out to its
// result; its return value is ignored. If f panics with big.ErrNaN, the
// result is NaN.
func Precise(prec uint, f func(out, in *big.Float) *big.Float) Func {
	return func(x float64) (r float64) {
		if math.IsNaN(x) {
			return x
		}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			err, _ := p.(error)
			if err == nil || !errors.As(err, new(big.ErrNaN)) {
				panic(p)
			}
			r = math.NaN()
		}()
		in := new(big.Float).SetPrec(prec).SetFloat64(x)
		out := new(big.Float).SetPrec(prec)
		f(out, in)
		r, _ = out.Float64()
		return r
	}
}

// extprec is the precision of computations for Extended.
const extprec = 128

var (
	bigexp = Precise(extprec, bigfloat.Exp)
	biglog = Precise(extprec, bigfloat.Log)
)

// Extended returns additional functions that are not registered by default:
// exp and ln, the natural exponential and logarithm. They are computed at
// higher precision and correctly rounded in nearly all cases.
func Extended() map[string]Func {
	return map[string]Func{
		"exp": exp,
		"ln":  ln,
	}
}

func exp(x float64) float64 {
	// Outside these bounds, the result overflows or underflows float64.
	switch {
	case math.IsNaN(x):
		return x
	case x > 7.09782712893383973096e+02:
		return math.Inf(1)
	case x < -7.45133219101941108420e+02:
		return 0
	}
	return bigexp(x)
}

func ln(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	case math.IsInf(x, 1):
		return x
	}
	return biglog(x)
}

// FuncError is an error indicating a call to a function that is not in the
// registry used for evaluation.
type FuncError struct {
	// Col is the position of the function name, or 0 if it has none.
	Col int
	// Func is the function name.
	Func string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Func))
}
