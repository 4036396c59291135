package smith

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfDomain is returned for a click outside the unit disk. Callers are
// expected to ignore the click without surfacing an error.
var ErrOutOfDomain = errors.New("smith: click outside chart")

// BoundingBox is the on-screen rectangle the chart is laid out in.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Box returns a bounding box anchored at the origin.
func Box(width, height float64) BoundingBox {
	return BoundingBox{Width: width, Height: height}
}

// Marker is the click marker position as a percentage of the bounding box.
// It is positioned independently of the drawing Frame.
type Marker struct {
	LeftPct float64
	TopPct  float64
}

// String renders the marker as CSS-style offsets.
func (m Marker) String() string {
	return fmt.Sprintf("left: %g%%, top: %g%%", m.LeftPct, m.TopPct)
}

// MarkerPosition returns the percent-of-box position of Γ.
func MarkerPosition(gamma Complex) Marker {
	return Marker{
		LeftPct: (gamma.Re + 1) * 50,
		TopPct:  (1 - gamma.Im) * 50,
	}
}

// ClickToGamma maps a click, given relative to the box's top-left corner,
// onto the Γ-plane. The radius is half the box width; the imaginary axis
// points up. Clicks with |Γ| > 1 or non-finite coordinates return
// ErrOutOfDomain.
func (b BoundingBox) ClickToGamma(x, y float64) (Complex, error) {
	cx := b.Width / 2
	cy := b.Height / 2
	r := b.Width / 2
	if r <= 0 {
		return Complex{}, ErrOutOfDomain
	}
	re := (x - cx) / r
	im := -(y - cy) / r
	if !(math.Hypot(re, im) <= 1) {
		return Complex{}, ErrOutOfDomain
	}
	return Complex{Re: re, Im: im}, nil
}

// ClientToGamma maps a click in client coordinates (already including
// Left/Top) onto the Γ-plane.
func (b BoundingBox) ClientToGamma(clientX, clientY float64) (Complex, error) {
	return b.ClickToGamma(clientX-b.Left, clientY-b.Top)
}

// ClickResult is everything derived from a valid chart click.
type ClickResult struct {
	Gamma     Complex
	Impedance Complex
	Marker    Marker
}

// Click maps a click to Γ, the impedance it represents and the marker
// position. Out-of-domain clicks return ErrOutOfDomain; Γ = 1 returns
// ErrSingularTransform.
func Click(b BoundingBox, x, y float64, t Transform) (ClickResult, error) {
	gamma, err := b.ClickToGamma(x, y)
	if err != nil {
		return ClickResult{}, err
	}
	z, err := t.Impedance(gamma)
	if err != nil {
		return ClickResult{}, err
	}
	return ClickResult{
		Gamma:     gamma,
		Impedance: z,
		Marker:    MarkerPosition(gamma),
	}, nil
}
