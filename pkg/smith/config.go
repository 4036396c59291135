package smith

import (
	"errors"
	"fmt"
)

// DefaultZ0 is the reference impedance in ohms.
const DefaultZ0 = 50.0

// DefaultRadius is the chart radius of the 400x400 drawing surface.
const DefaultRadius = 200.0

// DefaultReferenceValues are the normalized resistance and reactance values
// drawn as grid lines.
var DefaultReferenceValues = []float64{0.2, 0.5, 1, 2, 5}

// Config holds the process-wide constants of the chart engine. It is built
// once at startup and injected into the Transform and Geometry.
type Config struct {
	Z0          float64   // Reference impedance in ohms (default: 50)
	Radius      float64   // Chart radius in drawing units (default: 200)
	Resistances []float64 // Constant-resistance circles (default: 0.2, 0.5, 1, 2, 5)
	Reactances  []float64 // Constant-reactance arcs (default: 0.2, 0.5, 1, 2, 5)
}

// DefaultConfig returns the 50 Ω, 400x400 chart configuration.
func DefaultConfig() Config {
	return Config{
		Z0:          DefaultZ0,
		Radius:      DefaultRadius,
		Resistances: append([]float64(nil), DefaultReferenceValues...),
		Reactances:  append([]float64(nil), DefaultReferenceValues...),
	}
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Z0 <= 0 {
		errs = append(errs, fmt.Errorf("z0 must be positive, got %g", c.Z0))
	}
	if c.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius must be positive, got %g", c.Radius))
	}
	for _, r := range c.Resistances {
		if r < 0 {
			errs = append(errs, fmt.Errorf("resistance value must not be negative, got %g", r))
		}
	}
	for _, x := range c.Reactances {
		if x <= 0 {
			errs = append(errs, fmt.Errorf("reactance value must be positive, got %g", x))
		}
	}
	return errors.Join(errs...)
}

// Transform returns the bilinear transform for c.Z0.
func (c Config) Transform() Transform {
	return NewTransform(c.Z0)
}

// Frame returns the square drawing frame of side 2*Radius.
func (c Config) Frame() Frame {
	return Frame{Center: Point{X: c.Radius, Y: c.Radius}, Radius: c.Radius}
}

// Geometry returns the grid generator for the configured frame.
func (c Config) Geometry() Geometry {
	f := c.Frame()
	return Geometry{
		Center:      f.Center,
		Radius:      f.Radius,
		Resistances: c.Resistances,
		Reactances:  c.Reactances,
	}
}
