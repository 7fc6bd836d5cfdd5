package postfix

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"fortio.org/log"
)

// Context is a context for evaluating expressions. It holds variable values,
// the functions available to expressions, and the evaluation stack. It is not
// safe to use a Context concurrently, but clones of a context can be used
// concurrently with each other.
type Context struct {
	stack []float64
	names map[string]float64
	funcs *Registry
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	fnsopt  struct{ r *Registry }
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (fnsopt) ctxOption()  {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// WithFuncs sets the function registry used to evaluate function calls. The
// context only reads the registry. Without this option, a new context uses
// the default functions.
func WithFuncs(r *Registry) ContextOption {
	return fnsopt{r}
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{funcs: NewRegistry()}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The clone has
// its own variables and stack and shares the function registry.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]float64, 0, cap(ctx.stack)),
		names: make(map[string]float64, len(ctx.names)),
		funcs: ctx.funcs,
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case fnsopt:
			n.funcs = opt.r
		default:
			panic("postfix: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is set.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Funcs returns the context's function registry.
func (ctx *Context) Funcs() *Registry {
	return ctx.funcs
}

// Eval evaluates an expression after checking that the context defines every
// variable the expression uses. If any is missing, the result is a *NameError
// naming the first missing variable in sorted order, and nothing is
// evaluated.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	for _, name := range e.names {
		if _, ok := ctx.names[name]; !ok {
			return 0, &NameError{Name: name}
		}
	}
	return ctx.Calculate(e)
}

// Calculate evaluates an expression's postfix sequence. Unlike Eval, it does
// not check variables first; variables missing from the context evaluate to
// zero.
func (ctx *Context) Calculate(e *Expr) (float64, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range e.rpn {
		if err := ctx.step(tok); err != nil {
			return 0, err
		}
	}
	if len(ctx.stack) != 1 {
		return 0, &MalformedError{Len: len(ctx.stack)}
	}
	return ctx.stack[0], nil
}

// step evaluates a single token of a postfix sequence.
func (ctx *Context) step(tok Token) error {
	switch tok.Kind {
	case TokenNum:
		ctx.push(tok.Num)
	case TokenOp:
		if len(ctx.stack) < 2 {
			return &MalformedError{Col: tok.Pos, Token: tok.Text, Len: len(ctx.stack)}
		}
		r := ctx.pop()
		l := ctx.pop()
		x, err := apply(tok, l, r)
		if err != nil {
			return err
		}
		log.LogVf("postfix: %g %s %g = %g", l, tok.Text, r, x)
		ctx.push(x)
	case TokenFunc:
		if len(ctx.stack) < 1 {
			return &MalformedError{Col: tok.Pos, Token: tok.Text, Len: 0}
		}
		f, ok := ctx.funcs.Lookup(tok.Text)
		if !ok {
			return &FuncError{Col: tok.Pos, Func: tok.Text}
		}
		x := ctx.pop()
		r := f(x)
		log.LogVf("postfix: %s(%g) = %g", tok.Text, x, r)
		ctx.push(r)
	default:
		v, ok := ctx.names[tok.Text]
		if !ok {
			log.LogVf("postfix: undefined variable %q evaluates to 0", tok.Text)
		}
		ctx.push(v)
	}
	return nil
}

// apply applies a binary operator.
func apply(tok Token, l, r float64) (float64, error) {
	switch tok.Text {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, &DomainError{X: l, Y: r, Op: "/"}
		}
		return l / r, nil
	case "^":
		// A negative base has no real power unless the exponent is an
		// integer.
		if l < 0 && math.Trunc(r) != r {
			return 0, &DomainError{X: l, Y: r, Op: "^"}
		}
		return math.Pow(l, r), nil
	default:
		return 0, &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
}

func (ctx *Context) push(x float64) {
	ctx.stack = append(ctx.stack, x)
}

func (ctx *Context) pop() float64 {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// Eval is a shortcut to parse an expression and return its result. The
// expression is parsed with the context's functions.
func Eval(src io.RuneScanner, opts ...ContextOption) (float64, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src, ParseFuncs(ctx.funcs))
	if err != nil {
		return 0, err
	}
	return ctx.Eval(a)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

var (
	// ErrDivisionByZero is the error that a division by zero unwraps to.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidPower is the error that a fractional power of a negative
	// number unwraps to.
	ErrInvalidPower = errors.New("fractional power of negative number")
)

// DomainError is an error returned when an operator is applied to operands
// outside its domain. It unwraps to ErrDivisionByZero or ErrInvalidPower.
type DomainError struct {
	// X and Y are the left and right operands.
	X, Y float64
	// Op is the operator.
	Op string
}

func (err *DomainError) Error() string {
	return err.Unwrap().Error() + ": " + fmtf(err.X) + " " + err.Op + " " + fmtf(err.Y)
}

func (err *DomainError) Unwrap() error {
	if err.Op == "/" {
		return ErrDivisionByZero
	}
	return ErrInvalidPower
}

// MalformedError is an error indicating a postfix sequence that does not
// reduce to exactly one value, e.g. because an operator has too few operands.
type MalformedError struct {
	// Col is the position of the operator or function that lacked operands,
	// or 0 if none did.
	Col int
	// Token is the operator or function that lacked operands, or the empty
	// string if the sequence ended with the wrong number of values.
	Token string
	// Len is the number of values on the stack when the error occurred.
	Len int
}

func (err *MalformedError) Error() string {
	if err.Token == "" {
		return "malformed expression: " + strconv.Itoa(err.Len) + " values left instead of 1"
	}
	return errpos(err.Col, "malformed expression: not enough operands for "+strconv.Quote(err.Token))
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func fmtf(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
