package units

import (
	"fmt"
	"strings"
)

var siPrefixes = map[string]float64{
	"":  1,
	"p": 1e-12,
	"n": 1e-9,
	"u": 1e-6,
	"µ": 1e-6,
	"μ": 1e-6,
	"m": 1e-3,
	"k": 1e3,
	"K": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
}

// prefixScale splits unit into an SI prefix and one of the base units and
// returns the prefix multiplier. A unit that is only a prefix ("k") is
// accepted.
func prefixScale(unit string, base []string) (float64, error) {
	prefix := unit
	for _, b := range base {
		if len(unit) >= len(b) && strings.EqualFold(unit[len(unit)-len(b):], b) {
			prefix = unit[:len(unit)-len(b)]
			break
		}
	}
	scale, ok := siPrefixes[prefix]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnit, unit)
	}
	return scale, nil
}
