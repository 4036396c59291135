package smith

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Transform is the bilinear map between the reflection-coefficient plane and
// impedance, relative to a reference impedance Z0.
type Transform struct {
	Z0 float64
}

// NewTransform returns a Transform for the given reference impedance.
func NewTransform(z0 float64) Transform {
	return Transform{Z0: z0}
}

// Normalize returns z = Z / Z0.
func (t Transform) Normalize(z Complex) Complex {
	return Complex{Re: z.Re / t.Z0, Im: z.Im / t.Z0}
}

// Denormalize returns Z = z * Z0.
func (t Transform) Denormalize(z Complex) Complex {
	return z.Scale(t.Z0)
}

// Impedance maps a reflection coefficient to an impedance:
//
//	Z = Z0 * (1 + Γ) / (1 - Γ)
//
// Γ = 1 is the open-circuit pole and returns ErrSingularTransform.
func (t Transform) Impedance(gamma Complex) (Complex, error) {
	z, err := NormalizedImpedance(gamma)
	if err != nil {
		return Complex{}, err
	}
	return t.Denormalize(z), nil
}

// Gamma maps an impedance to its reflection coefficient:
//
//	Γ = (z - 1) / (z + 1),  z = Z / Z0
//
// z = -1 returns ErrSingularTransform.
func (t Transform) Gamma(z Complex) (Complex, error) {
	return NormalizedGamma(t.Normalize(z))
}

// NormalizedImpedance returns z = (1 + Γ) / (1 - Γ).
func NormalizedImpedance(gamma Complex) (Complex, error) {
	one := Real(1)
	z, err := one.Add(gamma).Div(one.Sub(gamma))
	if err != nil {
		return Complex{}, fmt.Errorf("impedance of Γ=%v: %w", gamma, ErrSingularTransform)
	}
	return z, nil
}

// NormalizedGamma returns Γ = (z - 1) / (z + 1).
func NormalizedGamma(z Complex) (Complex, error) {
	one := Real(1)
	g, err := z.Sub(one).Div(z.Add(one))
	if err != nil {
		return Complex{}, fmt.Errorf("gamma of z=%v: %w", z, ErrSingularTransform)
	}
	return g, nil
}

// ErrNoReflection is returned by ReturnLossDB for a perfectly matched load.
var ErrNoReflection = errors.New("smith: no reflection")

// VSWR returns the voltage standing wave ratio (1 + |Γ|) / (1 - |Γ|).
// Total reflection (|Γ| >= 1) has no finite VSWR.
func VSWR(gamma Complex) (float64, error) {
	mag := gamma.Abs()
	if mag >= 1-Tolerance {
		return 0, fmt.Errorf("vswr of |Γ|=%g: %w", mag, ErrSingularTransform)
	}
	return (1 + mag) / (1 - mag), nil
}

// ReturnLossDB returns -20 log10 |Γ|.
func ReturnLossDB(gamma Complex) (float64, error) {
	if gamma.IsZero() {
		return 0, ErrNoReflection
	}
	return -20 * math.Log10(gamma.Abs()), nil
}

// FormatOhms formats an impedance part for the input form (2 decimals).
func FormatOhms(v float64) string {
	return trimNegativeZero(fmt.Sprintf("%.2f", v))
}

// FormatGamma formats a reflection coefficient as "a + jb" with 3 decimals.
func FormatGamma(g Complex) string {
	re := trimNegativeZero(fmt.Sprintf("%.3f", g.Re))
	im := trimNegativeZero(fmt.Sprintf("%.3f", g.Im))
	return re + " + j" + im
}

// FormatAngle formats the argument of g in degrees with 1 decimal.
func FormatAngle(g Complex) string {
	return trimNegativeZero(fmt.Sprintf("%.1f", g.Phase()*180/math.Pi)) + "°"
}

// trimNegativeZero drops the sign of a value that rounds to zero.
func trimNegativeZero(s string) string {
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
