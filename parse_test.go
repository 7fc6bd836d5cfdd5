package postfix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/postfix"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"prec", "1+2*3", "1 2 3 * +"},
		{"brackets", "(1+2)*3", "1 2 + 3 *"},
		{"nested", "((1))", "1"},
		{"left-sub", "1-2-3", "1 2 - 3 -"},
		{"left-mix", "1-2+3", "1 2 - 3 +"},
		{"left-div", "8/4/2", "8 4 / 2 /"},
		{"left-pow", "2^3^2", "2 3 ^ 2 ^"},
		{"pow-mul", "2*3^2", "2 3 2 ^ *"},
		{"mul-pow", "2^3*2", "2 3 ^ 2 *"},
		{"all", "1+2*3^4-5/6", "1 2 3 4 ^ * + 5 6 / -"},
		{"call", "sin(90)", "90 sin"},
		{"call-op", "sqrt(x)+1", "x sqrt 1 +"},
		{"call-arg", "2*sin(30+60)", "2 30 60 + sin *"},
		{"call-call", "sin(cos(0))", "0 cos sin"},
		{"neg-num", "-3^2", "-3 2 ^"},
		{"neg-var", "-x", "x -1 *"},
		{"neg-var-op", "2*-x", "2 x -1 * *"},
		{"neg-bracket", "-(1+2)", "1 2 + -1 *"},
		{"neg-call", "-sin(90)", "90 sin -1 *"},
		{"neg-nested", "-sin(-(x))", "x -1 * sin -1 *"},
		{"quote", `"a"+1`, `"a" 1 +`},
		{"trailing-op", "1+", "1 +"},
		{"spaces", " 1 +\t2 ", "1 2 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := postfix.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.rpn {
				t.Errorf("%q gave wrong postfix: want %q, got %q", c.src, c.rpn, got)
			}
		})
	}
}

func TestParseStripNegation(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "-3", "-3"},
		{"var", "-x", "x"},
		{"var-op", "2*-x", "2 x *"},
		{"bracket", "-(1+2)", "1 2 +"},
		{"call", "-sin(90)", "90 sin"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := postfix.ParseString(c.src, postfix.StripNegation())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.rpn {
				t.Errorf("%q gave wrong postfix: want %q, got %q", c.src, c.rpn, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"close", ")", &postfix.BracketError{Col: 1, Right: ")"}},
		{"close-end", "1+2)", &postfix.BracketError{Col: 4, Right: ")"}},
		{"open", "(1", &postfix.BracketError{Col: 1, Left: "("}},
		{"open-outer", "((1)", &postfix.BracketError{Col: 1, Left: "("}},
		{"open-call", "sin(1", &postfix.BracketError{Col: 4, Left: "("}},
		{"quote", `1+"x`, &postfix.UnmatchedQuoteError{Col: 3}},
		{"lex", "1#", &postfix.LexError{Text: "#", Col: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := postfix.ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed to %v despite error", c.src, a)
			}
			if diff := cmp.Diff(c.err, err); diff != "" {
				t.Errorf("%q gave wrong error (-want +got):\n%s", c.src, diff)
			}
			var ie postfix.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%T is not an InputError", err)
			}
		})
	}
}

func TestParseFuncs(t *testing.T) {
	a, err := postfix.ParseString("sin(x)", postfix.ParseFuncs(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := a.String(); got != "sin x" {
		t.Errorf("wrong postfix with no functions: %q", got)
	}
	if diff := cmp.Diff([]string{"sin", "x"}, a.Vars()); diff != "" {
		t.Errorf("wrong variables (-want +got):\n%s", diff)
	}

	r := postfix.NewRegistry().Register("double", func(x float64) float64 { return 2 * x })
	a, err = postfix.ParseString("double(x)", postfix.ParseFuncs(r))
	if err != nil {
		t.Fatal(err)
	}
	want := []postfix.Token{
		{Kind: postfix.TokenVar, Text: "x", Pos: 8},
		{Kind: postfix.TokenFunc, Text: "double", Pos: 1},
	}
	if diff := cmp.Diff(want, a.Postfix()); diff != "" {
		t.Errorf("wrong postfix (-want +got):\n%s", diff)
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []string{"x"}},
		{"func", "sin(a)+b", []string{"a", "b"}},
		{"sort", "z+y+x+w+v+u+t+s+r+q+p+o+n+m+l+k+j+i+h+g+f+e+d+c+b+a", strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z")},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
		{"neg", "-a", []string{"a"}},
		{"quote", `"q"*2`, []string{"q"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := postfix.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			if diff := cmp.Diff(c.vars, a.Vars()); diff != "" {
				t.Errorf("%q gave wrong variable names (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestFromPostfix(t *testing.T) {
	toks := []postfix.Token{
		{Kind: postfix.TokenNum, Text: "1", Num: 1},
		{Kind: postfix.TokenVar, Text: "y"},
		{Kind: postfix.TokenOp, Text: "+"},
	}
	a := postfix.FromPostfix(toks)
	toks[0].Num = 2
	if got := a.Postfix()[0].Num; got != 1 {
		t.Errorf("FromPostfix didn't copy its input: first number is %g", got)
	}
	if diff := cmp.Diff([]string{"y"}, a.Vars()); diff != "" {
		t.Errorf("wrong variables (-want +got):\n%s", diff)
	}
	if got := a.String(); got != "1 y +" {
		t.Errorf("wrong string: %q", got)
	}
}
