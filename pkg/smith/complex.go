package smith

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats/scalar"
)

// ErrSingularTransform is returned when an operation hits the pole of a
// division, e.g. Γ = 1 (open circuit) or z = -1.
var ErrSingularTransform = errors.New("smith: singular transform")

// Tolerance is the absolute tolerance used when checking for a pole.
const Tolerance = 1e-12

// Complex is an immutable complex value. It is used for reflection
// coefficients, impedances and normalized impedances alike.
type Complex struct {
	Re float64
	Im float64
}

// C is shorthand for Complex{Re: re, Im: im}.
func C(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Real returns a complex value with no imaginary part.
func Real(re float64) Complex {
	return Complex{Re: re}
}

func fromBuiltin(c complex128) Complex {
	return Complex{Re: real(c), Im: imag(c)}
}

func (c Complex) builtin() complex128 {
	return complex(c.Re, c.Im)
}

// Add returns c + o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Sub returns c - o.
func (c Complex) Sub(o Complex) Complex {
	return Complex{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

// Mul returns c * o.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Scale returns k * c.
func (c Complex) Scale(k float64) Complex {
	return Complex{Re: k * c.Re, Im: k * c.Im}
}

// Div returns c / o. A zero-magnitude denominator, a non-finite operand or
// a non-finite quotient yields ErrSingularTransform.
func (c Complex) Div(o Complex) (Complex, error) {
	if o.IsZero() || !c.IsFinite() || !o.IsFinite() {
		return Complex{}, fmt.Errorf("divide %v by %v: %w", c, o, ErrSingularTransform)
	}
	q := fromBuiltin(c.builtin() / o.builtin())
	if !q.IsFinite() {
		return Complex{}, fmt.Errorf("divide %v by %v: %w", c, o, ErrSingularTransform)
	}
	return q, nil
}

// Abs returns the magnitude |c|.
func (c Complex) Abs() float64 {
	return cmplx.Abs(c.builtin())
}

// Phase returns the argument of c in radians, in (-π, π].
func (c Complex) Phase() float64 {
	return cmplx.Phase(c.builtin())
}

// IsZero reports whether |c| is within Tolerance of zero.
func (c Complex) IsZero() bool {
	return scalar.EqualWithinAbs(c.Abs(), 0, Tolerance)
}

// IsFinite reports whether both parts are finite numbers.
func (c Complex) IsFinite() bool {
	return !math.IsNaN(c.Re) && !math.IsInf(c.Re, 0) && !math.IsNaN(c.Im) && !math.IsInf(c.Im, 0)
}

// EqualWithin reports whether c and o agree to within tol in both parts.
func (c Complex) EqualWithin(o Complex, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(c.Re, o.Re, tol, tol) &&
		scalar.EqualWithinAbsOrRel(c.Im, o.Im, tol, tol)
}

// String formats c as "a+jb" without rounding.
func (c Complex) String() string {
	if c.Im < 0 {
		return fmt.Sprintf("%g-j%g", c.Re, -c.Im)
	}
	return fmt.Sprintf("%g+j%g", c.Re, c.Im)
}
