package units

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// QuantityLexer tokenizes numeric entries such as "2.4 GHz", "25-j10 Ω" or
// "1.5k".
var QuantityLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// Numbers, with optional exponent
	{Name: "Number", Pattern: `(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},

	// Imaginary unit; must precede Ident so "j" is never read as a unit
	{Name: "J", Pattern: `[jJ]`},

	// SI prefix and/or unit, e.g. k, GHz, Ω, ohm
	{Name: "Ident", Pattern: `[a-zA-Z\x{03A9}\x{2126}\x{00B5}\x{03BC}]+`},

	{Name: "Op", Pattern: `[-+]`},
})
