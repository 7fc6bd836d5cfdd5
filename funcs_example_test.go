package postfix_test

import (
	"fmt"
	"math"

	"github.com/zephyrtronium/postfix"
)

func ExampleRegistry() {
	r := postfix.NewRegistry().
		Register("abs", math.Abs).
		RegisterAll(postfix.Extended())

	for _, src := range []string{"abs(-3)-1", "exp(0)+ln(1)", "sqrt(abs(-16))"} {
		x, err := postfix.EvalString(src, postfix.WithFuncs(r))
		fmt.Println(src, "=", x, err)
	}

	// Output:
	// abs(-3)-1 = 2 <nil>
	// exp(0)+ln(1) = 1 <nil>
	// sqrt(abs(-16)) = 4 <nil>
}
