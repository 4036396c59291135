package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

func matchScene() Scene {
	s := NewScene(smith.DefaultConfig())
	s.Path = s.Frame.Path([]smith.Complex{smith.C(0.5, 0), smith.C(0.2, 0), {}})
	s.SetGamma(smith.C(0.5, 0))
	return s
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, matchScene()); err != nil {
		t.Fatalf("WriteSVG returned error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400"`) {
		t.Fatalf("unexpected header: %.80s", out)
	}
	// rim, five resistance circles, marker
	if got := strings.Count(out, "<circle"); got != 7 {
		t.Fatalf("circle count = %d, want 7", got)
	}
	// ten reactance arcs plus the matching path
	if got := strings.Count(out, "<path"); got != 11 {
		t.Fatalf("path count = %d, want 11", got)
	}
	if !strings.Contains(out, `d="M 300 200 L 240 200 L 200 200"`) {
		t.Fatalf("matching path missing:\n%s", out)
	}
	if !strings.Contains(out, `stroke="#dc0000"`) {
		t.Fatalf("matching path not red")
	}
	if !strings.Contains(out, `<circle cx="300" cy="200" r="5"`) {
		t.Fatalf("marker missing")
	}
}

func TestWriteSVGEmptyChart(t *testing.T) {
	s := NewScene(smith.DefaultConfig())
	s.Style.ShowLabels = false
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s); err != nil {
		t.Fatalf("WriteSVG returned error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<text") || strings.Count(out, "<path") != 10 {
		t.Fatalf("empty chart drew extras:\n%s", out)
	}
}

func TestRasterize(t *testing.T) {
	s := matchScene()
	img := Rasterize(s)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("bounds = %v, want 400x400", b)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(5, 5); got != white {
		t.Fatalf("corner pixel = %v, want background", got)
	}
	if got := img.RGBAAt(270, 200); got != s.Style.Path {
		t.Fatalf("path pixel = %v, want %v", got, s.Style.Path)
	}
	if got := img.RGBAAt(300, 200); got != s.Style.Marker {
		t.Fatalf("marker pixel = %v, want %v", got, s.Style.Marker)
	}
	// rim at the top of the chart
	if got := img.RGBAAt(200, 0); got.R > 128 {
		t.Fatalf("rim pixel = %v, want dark", got)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, matchScene()); err != nil {
		t.Fatalf("WritePNG returned error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Fatalf("width = %d", img.Bounds().Dx())
	}
}

func sweep(points ...[3]float64) *backend.Sweep {
	sw := &backend.Sweep{}
	for _, p := range points {
		sw.Points = append(sw.Points, backend.SweepPoint{
			Frequency: p[0],
			Gamma:     backend.Pair{Re: p[1], Im: p[2]},
		})
	}
	return sw
}

func TestSummarize(t *testing.T) {
	sw := sweep([3]float64{2.0, 0.6, 0}, [3]float64{2.4, 0, 0.2}, [3]float64{2.8, -0.24, 0.32})
	s, err := Summarize(sw)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if s.Best != 1 {
		t.Fatalf("Best = %d, want 1", s.Best)
	}
	if math.Abs(s.BestVSWR-1.5) > 1e-9 {
		t.Fatalf("BestVSWR = %v, want 1.5", s.BestVSWR)
	}
	if math.Abs(s.Mean-0.4) > 1e-9 {
		t.Fatalf("Mean = %v, want 0.4", s.Mean)
	}
}

func TestSummarizeRejectsDegenerateSweeps(t *testing.T) {
	cases := []*backend.Sweep{
		nil,
		sweep([3]float64{2.4, 0, 0}),
		sweep([3]float64{2.4, 0, 0}, [3]float64{2.4, 0.1, 0}),
	}
	for i, sw := range cases {
		if _, err := Summarize(sw); !errors.Is(err, ErrSweepRange) {
			t.Fatalf("case %d: error = %v, want ErrSweepRange", i, err)
		}
	}
}

func TestWriteSweepPlot(t *testing.T) {
	sw := sweep([3]float64{2.0, 0.6, 0}, [3]float64{2.4, 0, 0.2}, [3]float64{2.8, -0.24, 0.32})
	var buf bytes.Buffer
	if err := WriteSweepPlot(&buf, sw, DefaultPlotOptions()); err != nil {
		t.Fatalf("WriteSweepPlot returned error: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("png.DecodeConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 400 {
		t.Fatalf("plot size = %dx%d, want 800x400", cfg.Width, cfg.Height)
	}
}
