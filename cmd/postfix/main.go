package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/postfix"
)

func main() {
	var (
		verb                      string
		with                      []string
		strip, ext, dump, verbose bool
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [expr [name=value ...]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", func(s string) error {
		if _, _, err := postfix.ParseBinding(s); err != nil {
			return err
		}
		with = append(with, s)
		return nil
	})
	flag.BoolVar(&strip, "strip-neg", false, "ignore unary minus on anything but numbers")
	flag.BoolVar(&ext, "ext", false, "enable extended functions exp and ln")
	flag.BoolVar(&dump, "dump", false, "print postfix token sequences")
	flag.BoolVar(&verbose, "v", false, "log evaluation steps")
	flag.Parse()
	if verbose {
		log.SetLogLevel(log.Verbose)
	}

	funcs := postfix.NewRegistry()
	if ext {
		funcs.RegisterAll(postfix.Extended())
	}
	c := calc{
		popts: []postfix.ParseOption{postfix.ParseFuncs(funcs)},
		verb:  verb + "\n",
		dump:  dump,
	}
	if strip {
		c.popts = append(c.popts, postfix.StripNegation())
	}

	args := flag.Args()
	defs := with
	if len(args) > 1 {
		defs = append(defs, args[1:]...)
	}
	vars, err := postfix.ParseBindings(defs)
	if err != nil {
		// Evaluating still reports any variable we actually need.
		log.Warnf("%v", err)
	}
	c.ctx = postfix.NewContext(postfix.WithFuncs(funcs), postfix.SetVars(vars))

	switch {
	case len(args) > 0:
		if !c.run(args[0]) {
			os.Exit(1)
		}
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		c.lines(os.Stdin, "> ")
	default:
		if !c.lines(os.Stdin, "") {
			os.Exit(1)
		}
	}
}

type calc struct {
	ctx   *postfix.Context
	popts []postfix.ParseOption
	verb  string
	dump  bool
}

// run evaluates one expression and prints its result or error. Returns
// whether evaluation succeeded.
func (c *calc) run(src string) bool {
	a, err := postfix.ParseString(src, c.popts...)
	if err != nil {
		fmt.Println("Error:", err)
		return false
	}
	if c.dump {
		fmt.Println(repr.String(a.Postfix()))
	}
	r, err := c.ctx.Eval(a)
	if err != nil {
		fmt.Println("Error:", err)
		return false
	}
	fmt.Printf("Result: "+c.verb, r)
	return true
}

// lines evaluates each line of in as an expression. Lines containing = define
// variables for later lines instead. If prompt is non-empty, it is printed
// before reading each line.
func (c *calc) lines(in io.Reader, prompt string) bool {
	ok := true
	scan := bufio.NewScanner(in)
	for {
		fmt.Print(prompt)
		if !scan.Scan() {
			break
		}
		line := strings.TrimSpace(scan.Text())
		switch {
		case line == "":
			continue
		case strings.Contains(line, "="):
			name, value, err := postfix.ParseBinding(line)
			if err != nil {
				fmt.Println("Error:", err)
				ok = false
				continue
			}
			c.ctx.Set(name, value)
		default:
			ok = c.run(line) && ok
		}
	}
	if err := scan.Err(); err != nil {
		log.Errf("reading input: %v", err)
		return false
	}
	return ok
}
