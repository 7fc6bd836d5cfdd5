package postfix

import (
	"strconv"
	"strings"
)

// Token is a lexical token of an expression. The same type makes up both the
// infix sequence produced by Tokenize and the postfix sequence held by an
// Expr.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the token's text. Numbers are normalized, so the text of ".5"
	// is "0.5". Quoted tokens hold the text between the quotes.
	Text string
	// Num is the value of a TokenNum.
	Num float64
	// Neg marks a variable, function, or open bracket preceded by a unary
	// minus. Tokens in a postfix sequence never have Neg set.
	Neg bool
	// Pos is the column of the token's first rune, counting from 1. Tokens
	// synthesized by the parser have position 0.
	Pos int
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal, possibly negative.
	TokenNum
	// TokenOp is one of the binary operators in Operators.
	TokenOp
	// TokenFunc is the name of a registered function.
	TokenFunc
	// TokenOpen is an open bracket.
	TokenOpen
	// TokenClose is a close bracket.
	TokenClose
	// TokenVar is a variable name.
	TokenVar
	// TokenQuote is a quoted substring, passed through verbatim.
	TokenQuote
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

func (t Token) String() string {
	var b strings.Builder
	t.fmt(&b)
	return b.String()
}

func (t Token) fmt(b *strings.Builder) {
	if t.Neg {
		b.WriteByte('-')
	}
	switch t.Kind {
	case TokenQuote:
		b.WriteByte('"')
		b.WriteString(t.Text)
		b.WriteByte('"')
	case TokenNum:
		if t.Text == "" {
			b.WriteString(strconv.FormatFloat(t.Num, 'g', -1, 64))
			return
		}
		b.WriteString(t.Text)
	default:
		b.WriteString(t.Text)
	}
}

// num creates a number token which appears in no source text.
func num(x float64) Token {
	return Token{Kind: TokenNum, Text: strconv.FormatFloat(x, 'g', -1, 64), Num: x}
}

// op creates an operator token which appears in no source text.
func op(o byte) Token {
	return Token{Kind: TokenOp, Text: string(o)}
}
