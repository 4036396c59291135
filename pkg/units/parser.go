package units

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var (
	// ErrEmpty is returned for a blank entry.
	ErrEmpty = errors.New("units: empty value")
	// ErrSyntax is returned for an entry that is not a number with an
	// optional unit.
	ErrSyntax = errors.New("units: invalid value")
	// ErrUnit is returned when the unit does not fit the quantity.
	ErrUnit = errors.New("units: unexpected unit")
)

// Parser parses numeric entries with SI prefixes and units.
type Parser struct {
	parser *participle.Parser[Expression]
}

// NewParser creates a new quantity parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Expression](
		participle.Lexer(QuantityLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

var (
	defaultOnce   sync.Once
	defaultParser *Parser
	defaultErr    error
)

func shared() (*Parser, error) {
	defaultOnce.Do(func() {
		defaultParser, defaultErr = NewParser()
	})
	return defaultParser, defaultErr
}

// ParseString parses an entry into its expression tree.
func (p *Parser) ParseString(input string) (*Expression, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmpty
	}
	expr, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrSyntax, input, err)
	}
	for i, term := range expr.Terms {
		if term.PreJ && term.PostJ {
			return nil, fmt.Errorf("%w %q: j on both sides of %g", ErrSyntax, input, term.Value)
		}
		if i > 0 && term.Sign == "" {
			return nil, fmt.Errorf("%w %q: missing operator before %g", ErrSyntax, input, term.Value)
		}
	}
	return expr, nil
}

// Complex sums the expression's terms into a complex value, applying the
// unit's SI prefix. base lists the accepted unit names; the match is
// case-insensitive.
func (p *Parser) Complex(input string, base ...string) (smith.Complex, error) {
	expr, err := p.ParseString(input)
	if err != nil {
		return smith.Complex{}, err
	}
	return evaluate(expr, input, base)
}

func evaluate(expr *Expression, input string, base []string) (smith.Complex, error) {
	scale, err := prefixScale(expr.Unit, base)
	if err != nil {
		return smith.Complex{}, fmt.Errorf("%q: %w", input, err)
	}
	var re, im float64
	for _, term := range expr.Terms {
		if term.Imaginary() {
			im += term.Signed()
		} else {
			re += term.Signed()
		}
	}
	c := smith.C(re*scale, im*scale)
	if !c.IsFinite() {
		return smith.Complex{}, fmt.Errorf("%w %q: value out of range", ErrSyntax, input)
	}
	return c, nil
}

// Real parses an entry that must not carry an imaginary part.
func (p *Parser) Real(input string, base ...string) (float64, error) {
	c, err := p.Complex(input, base...)
	if err != nil {
		return 0, err
	}
	if c.Im != 0 {
		return 0, fmt.Errorf("%w %q: imaginary part not allowed", ErrSyntax, input)
	}
	return c.Re, nil
}

var ohmUnits = []string{"\u03a9", "\u2126", "ohms", "ohm"}

// ParseImpedance parses an impedance in ohms, e.g. "50", "25-j10", "1.2k Ω".
func ParseImpedance(input string) (smith.Complex, error) {
	p, err := shared()
	if err != nil {
		return smith.Complex{}, err
	}
	return p.Complex(input, ohmUnits...)
}

// ParseOhms parses a single real value in ohms, e.g. "-12.5" or "1k".
func ParseOhms(input string) (float64, error) {
	p, err := shared()
	if err != nil {
		return 0, err
	}
	return p.Real(input, ohmUnits...)
}

// ParseFrequencyGHz parses a frequency and returns it in GHz. A bare number
// is taken to be in GHz already; "2400 MHz", "2.4G" and "2.4e9 Hz" all give
// 2.4.
func ParseFrequencyGHz(input string) (float64, error) {
	p, err := shared()
	if err != nil {
		return 0, err
	}
	expr, err := p.ParseString(input)
	if err != nil {
		return 0, err
	}
	c, err := evaluate(expr, input, []string{"Hz"})
	if err != nil {
		return 0, err
	}
	if c.Im != 0 {
		return 0, fmt.Errorf("%w %q: imaginary part not allowed", ErrSyntax, input)
	}
	if expr.Unit == "" {
		return c.Re, nil
	}
	return c.Re / 1e9, nil
}

// ParseComplex parses a dimensionless complex value such as a reflection
// coefficient, e.g. "0.5-j0.25".
func ParseComplex(input string) (smith.Complex, error) {
	p, err := shared()
	if err != nil {
		return smith.Complex{}, err
	}
	expr, err := p.ParseString(input)
	if err != nil {
		return smith.Complex{}, err
	}
	if expr.Unit != "" {
		return smith.Complex{}, fmt.Errorf("%w %q", ErrUnit, expr.Unit)
	}
	return evaluate(expr, input, nil)
}
