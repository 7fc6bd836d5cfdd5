package postfix

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Konstantin8105/errors"
)

var numre = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseBinding parses a variable definition of the form "name=value". Spaces
// around the name and value are ignored. The value is a decimal number with an
// optional minus sign, written with either a point or a comma, and possibly
// with no digits before or after the decimal separator.
func ParseBinding(s string) (name string, value float64, err error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", 0, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name = strings.TrimSpace(d[0])
	if !isident(name) {
		return "", 0, fmt.Errorf("invalid variable name %q in %q", name, s)
	}
	v := strings.ReplaceAll(strings.TrimSpace(d[1]), ",", ".")
	if !strings.ContainsAny(v, "0123456789") || !numre.MatchString(normalize(v)) {
		return "", 0, fmt.Errorf("invalid value for %s: %q", name, d[1])
	}
	value, err = strconv.ParseFloat(normalize(v), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return name, value, nil
}

// ParseBindings parses a list of variable definitions as by ParseBinding.
// Later definitions of a name replace earlier ones. The result holds every
// definition that parsed; if any did not, the error lists all that failed.
func ParseBindings(defs []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(defs))
	et := errors.New("variable definitions")
	for _, s := range defs {
		name, value, err := ParseBinding(s)
		if err != nil {
			et.Add(err)
			continue
		}
		vars[name] = value
	}
	if et.IsError() {
		return vars, et
	}
	return vars, nil
}
