// Package render draws the chart outside the interactive UI: as an SVG
// document, as a PNG raster, and as a sweep plot of |Γ| over frequency.
package render

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Style holds the colours and stroke widths of a chart.
type Style struct {
	Background color.RGBA
	Rim        color.RGBA
	Grid       color.RGBA
	Path       color.RGBA
	Sweep      color.RGBA
	Marker     color.RGBA
	Label      color.RGBA

	RimWidth    float64
	GridWidth   float64
	PathWidth   float64
	MarkerSize  float64
	ShowLabels  bool
	ArcSegments int
}

// DefaultStyle matches the interactive chart: black rim, grey grid, red
// matching path.
func DefaultStyle() Style {
	return Style{
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Rim:         color.RGBA{A: 255},
		Grid:        color.RGBA{R: 160, G: 160, B: 160, A: 255},
		Path:        color.RGBA{R: 220, A: 255},
		Sweep:       color.RGBA{B: 200, A: 255},
		Marker:      color.RGBA{R: 30, G: 120, B: 220, A: 255},
		Label:       color.RGBA{R: 90, G: 90, B: 90, A: 255},
		RimWidth:    2,
		GridWidth:   1,
		PathWidth:   2,
		MarkerSize:  5,
		ShowLabels:  true,
		ArcSegments: 64,
	}
}

// Scene is everything drawn on one chart, in drawing coordinates.
type Scene struct {
	Geometry  smith.Geometry
	Frame     smith.Frame
	Path      smith.Path
	SweepPath smith.Path
	Marker    *smith.Point
	Style     Style
}

// NewScene returns an empty chart for cfg with the default style.
func NewScene(cfg smith.Config) Scene {
	return Scene{
		Geometry: cfg.Geometry(),
		Frame:    cfg.Frame(),
		Style:    DefaultStyle(),
	}
}

// SetGamma places the marker at the reflection coefficient g.
func (s *Scene) SetGamma(g smith.Complex) {
	p := s.Frame.ToDrawing(g)
	s.Marker = &p
}

// Size returns the side of the square drawing surface.
func (s Scene) Size() float64 {
	return 2 * s.Frame.Radius
}

// label is a grid value annotation at a drawing position.
type label struct {
	At   smith.Point
	Text string
}

// labels puts each resistance value where its circle crosses the real axis
// on the left, and each reactance value at the rim end of its arcs.
func (s Scene) labels() []label {
	if !s.Style.ShowLabels {
		return nil
	}
	var out []label
	for _, p := range s.Geometry.Grid() {
		switch v := p.(type) {
		case smith.Circle:
			out = append(out, label{
				At:   smith.Point{X: v.Center.X - v.Radius + 2, Y: v.Center.Y - 3},
				Text: formatValue(v.Resistance),
			})
		case smith.Arc:
			if v.Reactance < 0 {
				continue
			}
			out = append(out, label{
				At:   smith.Point{X: v.End.X + 2, Y: v.End.Y - 2},
				Text: formatValue(v.Reactance),
			})
		}
	}
	return out
}
