package smith

import (
	"fmt"
	"math"
)

// Point is a position in drawing coordinates: origin top-left, Y downward.
type Point struct {
	X float64
	Y float64
}

// PrimitiveKind distinguishes grid primitives.
type PrimitiveKind int

const (
	KindCircle PrimitiveKind = iota
	KindArc
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Primitive is a drawable grid element. Implementations are Circle and Arc.
type Primitive interface {
	Kind() PrimitiveKind
	// Value is the normalized resistance or signed reactance the line stands for.
	Value() float64
}

// Circle is a constant-resistance line.
type Circle struct {
	Center     Point
	Radius     float64
	Resistance float64
}

func (c Circle) Kind() PrimitiveKind { return KindCircle }
func (c Circle) Value() float64      { return c.Resistance }

// Arc is a constant-reactance line. Sweep follows SVG's sweep-flag: true is
// the positive-angle direction.
type Arc struct {
	Start     Point
	End       Point
	Radius    float64
	Sweep     bool
	Reactance float64
}

func (a Arc) Kind() PrimitiveKind { return KindArc }
func (a Arc) Value() float64      { return a.Reactance }

// SVGPath returns the arc as an SVG path "d" attribute.
func (a Arc) SVGPath() string {
	sweep := 0
	if a.Sweep {
		sweep = 1
	}
	return fmt.Sprintf("M %g %g A %g %g 0 0 %d %g %g",
		a.Start.X, a.Start.Y, a.Radius, a.Radius, sweep, a.End.X, a.End.Y)
}

// Center returns the centre of the arc's circle, picking the solution that
// matches the sweep flag (small-arc only).
func (a Arc) Center() Point {
	mx := (a.Start.X + a.End.X) / 2
	my := (a.Start.Y + a.End.Y) / 2
	dx := a.End.X - a.Start.X
	dy := a.End.Y - a.Start.Y
	half := math.Hypot(dx, dy) / 2
	if half == 0 {
		return a.Start
	}
	r := a.drawnRadius()
	h := math.Sqrt(math.Max(r*r-half*half, 0))
	// unit normal to the chord
	nx, ny := -dy/(2*half), dx/(2*half)
	if a.Sweep {
		return Point{X: mx + h*nx, Y: my + h*ny}
	}
	return Point{X: mx - h*nx, Y: my - h*ny}
}

// drawnRadius is the radius an SVG renderer uses: a radius too small to span
// the chord is scaled up until the arc is a half circle.
func (a Arc) drawnRadius() float64 {
	half := math.Hypot(a.End.X-a.Start.X, a.End.Y-a.Start.Y) / 2
	return math.Max(a.Radius, half)
}

// Sample approximates the arc with n+1 points from Start to End, for
// renderers that only draw line segments.
func (a Arc) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	c := a.Center()
	r := a.drawnRadius()
	a0 := math.Atan2(a.Start.Y-c.Y, a.Start.X-c.X)
	a1 := math.Atan2(a.End.Y-c.Y, a.End.X-c.X)
	delta := a1 - a0
	if a.Sweep {
		for delta < 0 {
			delta += 2 * math.Pi
		}
	} else {
		for delta > 0 {
			delta -= 2 * math.Pi
		}
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := a0 + delta*float64(i)/float64(n)
		pts = append(pts, Point{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)})
	}
	pts[n] = a.End
	return pts
}

// Geometry generates the static chart overlay for a drawing frame.
type Geometry struct {
	Center      Point
	Radius      float64
	Resistances []float64
	Reactances  []float64
}

// ResistanceCircle returns the constant-resistance circle for rVal: diameter
// 2R/(1+rVal), centre shifted left of the chart centre by half its radius.
func (g Geometry) ResistanceCircle(rVal float64) Circle {
	diameter := 2 * g.Radius / (1 + rVal)
	radius := diameter / 2
	return Circle{
		Center:     Point{X: g.Center.X - radius/2, Y: g.Center.Y},
		Radius:     radius,
		Resistance: rVal,
	}
}

// ReactanceArcs returns the positive and negative constant-reactance arcs for
// xVal. Both span the rim angles atan(1/xVal) to π-atan(1/xVal); the negative
// arc is the positive one mirrored across the horizontal centre line and
// sweeps the opposite way.
func (g Geometry) ReactanceArcs(xVal float64) (Arc, Arc) {
	cx, cy, r := g.Center.X, g.Center.Y, g.Radius
	startAngle := math.Atan(1 / xVal)
	endAngle := math.Pi - startAngle

	start := Point{X: cx + r*math.Cos(startAngle), Y: cy - r*math.Sin(startAngle)}
	end := Point{X: cx + r*math.Cos(endAngle), Y: cy - r*math.Sin(endAngle)}

	pos := Arc{Start: start, End: end, Radius: r / xVal, Sweep: true, Reactance: xVal}
	neg := Arc{
		Start:     Point{X: start.X, Y: 2*cy - start.Y},
		End:       Point{X: end.X, Y: 2*cy - end.Y},
		Radius:    r / xVal,
		Sweep:     false,
		Reactance: -xVal,
	}
	return pos, neg
}

// Grid returns every grid primitive: one circle per resistance value and two
// arcs per reactance value.
func (g Geometry) Grid() []Primitive {
	prims := make([]Primitive, 0, len(g.Resistances)+2*len(g.Reactances))
	for _, rVal := range g.Resistances {
		prims = append(prims, g.ResistanceCircle(rVal))
	}
	for _, xVal := range g.Reactances {
		pos, neg := g.ReactanceArcs(xVal)
		prims = append(prims, pos, neg)
	}
	return prims
}

// Rim returns the unit circle |Γ| = 1.
func (g Geometry) Rim() Circle {
	return Circle{Center: g.Center, Radius: g.Radius}
}
