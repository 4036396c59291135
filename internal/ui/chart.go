package ui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var (
	chartBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	rimColor        = color.NRGBA{A: 255}
	gridColor       = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
	pathColor       = color.NRGBA{R: 220, A: 255}
	sweepColor      = color.NRGBA{B: 200, A: 160}
	markerColor     = color.NRGBA{R: 30, G: 120, B: 220, A: 255}
)

// arcSegments is the number of line segments per grid arc or circle.
const arcSegments = 72

// chartView maps drawing coordinates of the engine onto a square of side
// pixels.
type chartView struct {
	side  int
	scale float32
}

func newChartView(max image.Point, frame smith.Frame) chartView {
	side := max.X
	if max.Y < side {
		side = max.Y
	}
	if side < 1 {
		side = 1
	}
	return chartView{side: side, scale: float32(side) / float32(2*frame.Radius)}
}

func (v chartView) pt(p smith.Point) f32.Point {
	return f32.Pt(float32(p.X)*v.scale, float32(p.Y)*v.scale)
}

// box is the chart's bounding box in local pixels.
func (v chartView) box() smith.BoundingBox {
	return smith.Box(float64(v.side), float64(v.side))
}

// click turns a pointer press inside the chart into a session command.
func (v chartView) click(pos f32.Point) session.ChartClick {
	return session.ChartClick{Box: v.box(), X: float64(pos.X), Y: float64(pos.Y)}
}

// markerCenter places the percent-of-box marker in local pixels.
func (v chartView) markerCenter(m smith.Marker) f32.Point {
	return f32.Pt(float32(m.LeftPct/100)*float32(v.side), float32(m.TopPct/100)*float32(v.side))
}

func circlePoints(c smith.Circle) []smith.Point {
	pts := make([]smith.Point, arcSegments+1)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / arcSegments
		pts[i] = smith.Point{X: c.Center.X + c.Radius*math.Cos(t), Y: c.Center.Y + c.Radius*math.Sin(t)}
	}
	return pts
}

func (v chartView) stroke(gtx layout.Context, pts []smith.Point, width float32, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(v.pt(pts[0]))
	for _, q := range pts[1:] {
		p.LineTo(v.pt(q))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: p.End(), Width: width}.Op())
}

func dot(gtx layout.Context, c f32.Point, r float32, col color.NRGBA) {
	rect := image.Rectangle{
		Min: image.Pt(int(c.X-r), int(c.Y-r)),
		Max: image.Pt(int(c.X+r), int(c.Y+r)),
	}
	paint.FillShape(gtx.Ops, col, clip.Ellipse(rect).Op(gtx.Ops))
}

// layoutChart draws the chart, its overlays and the marker, and turns
// primary-button presses into ChartClick commands.
func (a *App) layoutChart(gtx layout.Context, state session.State) layout.Dimensions {
	view := newChartView(gtx.Constraints.Max, a.frame)
	size := image.Pt(view.side, view.side)

	for {
		ev, ok := gtx.Event(pointer.Filter{Target: &a.chartTag, Kinds: pointer.Press})
		if !ok {
			break
		}
		if pev, ok := ev.(pointer.Event); ok && pev.Buttons == pointer.ButtonPrimary {
			a.do(view.click(pev.Position))
		}
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, &a.chartTag)
	paint.FillShape(gtx.Ops, chartBackground, clip.Rect{Max: size}.Op())

	width := float32(gtx.Dp(1))
	for _, p := range a.geometry.Grid() {
		switch g := p.(type) {
		case smith.Circle:
			view.stroke(gtx, circlePoints(g), width, gridColor)
		case smith.Arc:
			view.stroke(gtx, g.Sample(arcSegments), width, gridColor)
		}
	}
	view.stroke(gtx, circlePoints(a.geometry.Rim()), 2*width, rimColor)

	if !state.SweepPath.Empty() {
		view.stroke(gtx, state.SweepPath.Points(), 2*width, sweepColor)
	}
	if !state.Path.Empty() {
		view.stroke(gtx, state.Path.Points(), 2*width, pathColor)
		for _, p := range state.Path.Points() {
			dot(gtx, view.pt(p), 2*width, pathColor)
		}
	}
	if state.Marker != nil {
		dot(gtx, view.markerCenter(*state.Marker), float32(gtx.Dp(5)), markerColor)
	}
	area.Pop()
	return layout.Dimensions{Size: size}
}
