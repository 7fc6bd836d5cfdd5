package postfix

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood by the evaluator. The parser never produces such tokens, but
// sequences built with FromPostfix can contain them.
type OperatorError struct {
	// Col is the position of the operator, or 0 if it has none.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, or the empty string if a close bracket has
	// no open bracket.
	Left string
	// Right is the closing bracket, or the empty string if an open bracket
	// is never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position. Tokens
// that do not come from input text have position 0 and get no prefix.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the column of the start of the token that caused the
	// error, counting from 1.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*UnmatchedQuoteError)(nil)
)
