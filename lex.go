package postfix

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src   io.RuneScanner
	buf   strings.Builder
	funcs *Registry
	// rune is the number of runes read from src, including whitespace.
	rune int
	// last is the last non-space rune read, and before is the one before it,
	// so that unreading can restore last.
	last, before rune
}

func lex(src io.RuneScanner, funcs *Registry) *lexer {
	return &lexer{src: src, funcs: funcs}
}

// Tokenize scans src into a sequence of tokens. Identifiers which name
// functions in funcs become TokenFunc; all others are TokenVar. funcs may be
// nil, in which case there are no function names.
func Tokenize(src string, funcs *Registry) ([]Token, error) {
	return tokenize(lex(strings.NewReader(src), funcs))
}

func tokenize(l *lexer) ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// readRaw reads the next non-space rune from src.
func (l *lexer) readRaw() (rune, error) {
	for {
		r, sz, err := l.src.ReadRune()
		if sz > 0 {
			l.rune++
		}
		if err != nil {
			return r, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		l.before, l.last = l.last, r
		return r, nil
	}
}

// readRune reads the next non-space rune from src, reading commas as decimal
// points.
func (l *lexer) readRune() (rune, error) {
	r, err := l.readRaw()
	if r == ',' {
		r = '.'
	}
	return r, err
}

// unreadRune unreads the last rune read. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
	l.last = l.before
}

// unary returns whether a minus sign at the current position negates the
// following term, i.e. whether it is at the start of the input or follows an
// operator or an open bracket.
func (l *lexer) unary() bool {
	return l.last == 0 || l.last == '(' || strings.ContainsRune(Operators, l.last)
}

// next scans the next token from the input. At the end of input, the result
// is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	unary := l.unary()
	r, err := l.readRune()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Pos: l.rune}
	switch {
	case isdigit(r), r == '.':
		l.unreadRune()
		return l.scanNum(tok)
	case r == '_', unicode.IsLetter(r):
		l.unreadRune()
		return l.scanIdent(tok)
	case r == '"':
		return l.scanQuote(tok)
	case r == '-' && unary:
		return l.scanNeg(tok)
	case r == '(':
		tok.Kind, tok.Text = TokenOpen, "("
		return tok, nil
	case r == ')':
		tok.Kind, tok.Text = TokenClose, ")"
		return tok, nil
	case strings.ContainsRune(Operators, r):
		tok.Kind, tok.Text = TokenOp, string(r)
		return tok, nil
	default:
		// Write the rune so that it shows up in the error message.
		l.buf.WriteRune(r)
		return tok, l.error(tok.Pos, "")
	}
}

// scanNeg scans the term following a unary minus. If there is nothing there
// to negate, the minus is an ordinary operator.
func (l *lexer) scanNeg(tok Token) (Token, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			tok.Kind, tok.Text = TokenOp, "-"
			return tok, nil
		}
		return tok, err
	}
	tok.Neg = true
	switch {
	case isdigit(r), r == '.':
		l.unreadRune()
		l.buf.WriteByte('-')
		tok.Neg = false
		return l.scanNum(tok)
	case r == '_', unicode.IsLetter(r):
		l.unreadRune()
		return l.scanIdent(tok)
	case r == '(':
		tok.Kind, tok.Text = TokenOpen, "("
		return tok, nil
	default:
		l.unreadRune()
		tok.Kind, tok.Text, tok.Neg = TokenOp, "-", false
		return tok, nil
	}
}

func (l *lexer) scanNum(tok Token) (Token, error) {
	var dig bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if !isdigit(r) && r != '.' {
			l.unreadRune()
			break
		}
		dig = dig || r != '.'
		l.buf.WriteRune(r)
	}
	if !dig {
		return tok, l.error(tok.Pos, "number")
	}
	s := normalize(l.buf.String())
	x, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Out of range parses to the appropriately signed infinity, which
		// is fine. Anything else is too many decimal points.
		return tok, l.error(tok.Pos, "number")
	}
	tok.Kind, tok.Text, tok.Num = TokenNum, s, x
	return tok, nil
}

// normalize adds zeros to a number which begins or ends with a decimal point,
// with or without a leading minus sign.
func normalize(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return sign + s
}

func (l *lexer) scanIdent(tok Token) (Token, error) {
	for {
		r, err := l.readRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				break
			}
			return tok, err
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	tok.Text = l.buf.String()
	tok.Kind = TokenVar
	if l.funcs.Has(tok.Text) {
		tok.Kind = TokenFunc
	}
	return tok, nil
}

func (l *lexer) scanQuote(tok Token) (Token, error) {
	for {
		r, err := l.readRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tok, &UnmatchedQuoteError{Col: tok.Pos}
			}
			return tok, err
		}
		if r == '"' {
			break
		}
		l.buf.WriteRune(r)
	}
	tok.Kind, tok.Text = TokenQuote, l.buf.String()
	return tok, nil
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) error(col int, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the error occurred.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the column of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

// UnmatchedQuoteError indicates a quote with no closing quote. It implements
// InputError.
type UnmatchedQuoteError struct {
	// Col is the column of the opening quote.
	Col int
}

func (err *UnmatchedQuoteError) Error() string {
	return errpos(err.Col, "unmatched quote")
}

func (err *UnmatchedQuoteError) Pos() int {
	return err.Col
}
