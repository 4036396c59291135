// Package smith is the Smith-chart coordinate engine: the bilinear transform
// between reflection coefficient and impedance, the constant-resistance and
// constant-reactance grid, and the mappings between the Γ-plane and the two
// screen coordinate systems used to draw it.
//
// # Overview
//
// The package provides:
//   - Complex: immutable complex values with a guarded Div
//   - Transform: Γ → Z and Z → Γ for a reference impedance Z0
//   - Geometry: grid primitives (Circle, Arc) for a drawing frame
//   - Frame: Γ ↔ drawing coordinates, and gamma path → move/line commands
//   - BoundingBox: click → Γ, and the percent-of-box Marker
//
// # Coordinate systems
//
// The Γ-plane has its origin at the disk centre, real axis to the right and
// imaginary axis up. Drawing coordinates have their origin at the top-left
// of a 2R square with Y growing down, so both Frame and BoundingBox negate
// the imaginary part. The Marker is a separate percent-of-box position used
// for overlays laid out independently of the chart drawing:
//
//	frame := smith.DefaultFrame
//	p := frame.ToDrawing(smith.C(0.5, 0))    // {300 200}
//	m := smith.MarkerPosition(smith.C(0, 0)) // left 50%, top 50%
//
// # Poles
//
// Γ = 1 and z = -1 have no finite image. Every operation that can reach a
// pole returns ErrSingularTransform instead of Inf or NaN, so callers never
// display a non-finite number.
package smith
