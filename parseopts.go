package postfix

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcsopt struct{ r *Registry }
	stripopt struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// funcs is the set of function names that the lexer recognizes. Other
	// identifiers are variables.
	funcs *Registry
	// strip indicates that a unary minus on anything other than a number is
	// dropped rather than negating the term.
	strip bool
}

// ParseFuncs sets the registry whose function names are recognized during
// parsing. Passing nil means no identifier is a function. Without this
// option, the default functions are recognized.
func ParseFuncs(r *Registry) ParseOption {
	return funcsopt{r}
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	p.funcs = o.r
	if p.funcs == nil {
		p.funcs = EmptyRegistry()
	}
	return p
}

// StripNegation makes the parser drop a unary minus applied to a variable,
// function call, or bracketed term, so that "-x" evaluates the same as "x".
// Negative number literals are unaffected. This reproduces the behavior of
// older calculators that some inputs may depend on.
func StripNegation() ParseOption {
	return stripopt{}
}

func (stripopt) parseOption(p parsectx) parsectx {
	p.strip = true
	return p
}
