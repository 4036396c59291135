package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// ErrSweepRange is returned for a sweep the plot cannot scale: fewer than
// two points, or a single frequency.
var ErrSweepRange = errors.New("render: sweep needs at least two distinct frequencies")

// SweepSummary condenses a sweep into the figures shown next to its plot.
type SweepSummary struct {
	Frequencies []float64 // GHz
	Magnitudes  []float64 // |Γ|
	Best        int       // index of the smallest |Γ|
	BestVSWR    float64   // +Inf when the best point is fully reflected
	Mean        float64   // mean |Γ|
}

// Summarize computes |Γ| for every sweep point.
func Summarize(sw *backend.Sweep) (SweepSummary, error) {
	if sw == nil || len(sw.Points) < 2 {
		return SweepSummary{}, ErrSweepRange
	}
	s := SweepSummary{
		Frequencies: make([]float64, len(sw.Points)),
		Magnitudes:  make([]float64, len(sw.Points)),
	}
	for i, p := range sw.Points {
		s.Frequencies[i] = p.Frequency
		s.Magnitudes[i] = p.Gamma.Complex().Abs()
	}
	if floats.Max(s.Frequencies) == floats.Min(s.Frequencies) {
		return SweepSummary{}, ErrSweepRange
	}
	s.Best = floats.MinIdx(s.Magnitudes)
	s.Mean = floats.Sum(s.Magnitudes) / float64(len(s.Magnitudes))
	vswr, err := smith.VSWR(sw.Points[s.Best].Gamma.Complex())
	if err != nil {
		vswr = math.Inf(1)
	}
	s.BestVSWR = vswr
	return s, nil
}

// PlotOptions sizes the sweep plot.
type PlotOptions struct {
	Width  int
	Height int
	Title  string
}

// DefaultPlotOptions returns an 800x400 plot.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 800, Height: 400, Title: "Reflection vs frequency"}
}

// WriteSweepPlot renders |Γ| over frequency as PNG. The best match is drawn
// as a separate dot series.
func WriteSweepPlot(w io.Writer, sw *backend.Sweep, opt PlotOptions) error {
	s, err := Summarize(sw)
	if err != nil {
		return err
	}
	red := drawing.Color{R: 220, A: 255}
	blue := drawing.Color{R: 30, G: 120, B: 220, A: 255}

	ch := chart.Chart{
		Title:      opt.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{Name: "Frequency (GHz)"},
		YAxis: chart.YAxis{
			Name:  "|Γ|",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, floats.Max(s.Magnitudes))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "|Γ|",
				XValues: s.Frequencies,
				YValues: s.Magnitudes,
				Style:   chart.Style{StrokeColor: red, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("best %.3f GHz", s.Frequencies[s.Best]),
				XValues: []float64{s.Frequencies[s.Best]},
				YValues: []float64{s.Magnitudes[s.Best]},
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: blue},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
