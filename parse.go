package postfix

import (
	"io"
	"strings"
)

// Expr is a parsed expression in postfix order that can be evaluated with a
// context.
type Expr struct {
	// rpn is the postfix token sequence.
	rpn []Token
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.funcs == nil {
		p.funcs = NewRegistry()
	}
	toks, err := tokenize(lex(src, p.funcs))
	if err != nil {
		return nil, err
	}
	rpn, err := p.convert(toks)
	if err != nil {
		return nil, err
	}
	return &Expr{rpn: rpn, names: collect(rpn)}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// FromPostfix creates an expression directly from a postfix token sequence,
// without checking it. Number tokens must have their Num set. Errors in the
// sequence are reported when it is evaluated.
func FromPostfix(toks []Token) *Expr {
	rpn := append(([]Token)(nil), toks...)
	return &Expr{rpn: rpn, names: collect(rpn)}
}

// convert reorders an infix token sequence to postfix with the shunting-yard
// algorithm.
func (p *parsectx) convert(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack []Token
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum, TokenQuote:
			out = append(out, tok)
		case TokenVar:
			out = p.emit(out, tok)
		case TokenFunc, TokenOpen:
			stack = append(stack, tok)
		case TokenOp:
			// Functions always go first. Operators of the same precedence
			// also go first, so every operator is left-associative,
			// including ^: 2^3^2 is (2^3)^2.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenFunc && (top.Kind != TokenOp || prec(top.Text) > prec(tok.Text)) {
					break
				}
				out = p.emit(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case TokenClose:
			k := len(stack) - 1
			for k >= 0 && stack[k].Kind != TokenOpen {
				out = p.emit(out, stack[k])
				k--
			}
			if k < 0 {
				return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
			}
			out = p.emit(out, stack[k])
			stack = stack[:k]
			// A function before the bracket takes the bracketed term as its
			// argument.
			if k > 0 && stack[k-1].Kind == TokenFunc {
				out = p.emit(out, stack[k-1])
				stack = stack[:k-1]
			}
		default:
			panic("postfix: unknown token: " + tok.Kind.String() + " " + tok.String())
		}
	}
	for k := len(stack) - 1; k >= 0; k-- {
		if stack[k].Kind == TokenOpen {
			return nil, &BracketError{Col: stack[k].Pos, Left: stack[k].Text}
		}
		out = p.emit(out, stack[k])
	}
	return out, nil
}

// emit appends a token popped from the operator stack, or an operand, to the
// output sequence. Negated terms are followed by a multiplication by -1
// unless the parser strips negation. Open brackets only contribute their
// negation.
func (p *parsectx) emit(out []Token, tok Token) []Token {
	neg := tok.Neg && !p.strip
	tok.Neg = false
	if tok.Kind != TokenOpen {
		out = append(out, tok)
	}
	if neg {
		out = append(out, num(-1), op('*'))
	}
	return out
}

// prec gets the precedence of an operator. Lower is more binding.
func prec(op string) int8 {
	switch op {
	case "^":
		return 2
	case "*", "/":
		return 3
	case "+", "-":
		return 4
	default:
		// Unknown operators bind least so that they don't reorder others.
		return 127
	}
}

// collect finds the names of variables in a postfix sequence, which are all
// the tokens that are not numbers, operators, or functions.
func collect(rpn []Token) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range rpn {
		switch tok.Kind {
		case TokenNum, TokenOp, TokenFunc:
			continue
		}
		if !seen[tok.Text] {
			seen[tok.Text] = true
			names = append(names, tok.Text)
		}
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the variable names used when evaluating the expression, in
// sorted order.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Postfix returns a copy of the expression's token sequence in postfix order.
func (e *Expr) Postfix() []Token {
	return append(([]Token)(nil), e.rpn...)
}

// String formats the postfix sequence with tokens separated by spaces.
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		tok.fmt(&b)
	}
	return b.String()
}
