package smith

import (
	"fmt"
	"strings"
)

// Verb is a path drawing command.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
)

// String returns the SVG command letter.
func (v Verb) String() string {
	switch v {
	case VerbMoveTo:
		return "M"
	case VerbLineTo:
		return "L"
	default:
		return "?"
	}
}

// Command is a single move/line instruction in drawing coordinates.
type Command struct {
	Verb  Verb
	Point Point
}

func (c Command) String() string {
	return fmt.Sprintf("%s %g %g", c.Verb, c.Point.X, c.Point.Y)
}

// Path is an ordered list of drawing commands.
type Path struct {
	Commands []Command
}

// Empty reports whether the path has no commands.
func (p Path) Empty() bool {
	return len(p.Commands) == 0
}

// Points returns the command points in order.
func (p Path) Points() []Point {
	pts := make([]Point, len(p.Commands))
	for i, c := range p.Commands {
		pts[i] = c.Point
	}
	return pts
}

// String renders the path as an SVG "d" attribute, e.g. "M 300 200 L 240 200".
func (p Path) String() string {
	parts := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Frame is the chart's own drawing coordinate system: the unit disk scaled
// by Radius around Center, with Y pointing down.
type Frame struct {
	Center Point
	Radius float64
}

// DefaultFrame is the 400x400 drawing surface.
var DefaultFrame = Frame{Center: Point{X: 200, Y: 200}, Radius: 200}

// ToDrawing maps a reflection coefficient to drawing coordinates.
func (f Frame) ToDrawing(gamma Complex) Point {
	return Point{
		X: f.Center.X + gamma.Re*f.Radius,
		Y: f.Center.Y - gamma.Im*f.Radius,
	}
}

// ToGamma maps a drawing point back to the Γ-plane.
func (f Frame) ToGamma(p Point) Complex {
	return Complex{
		Re: (p.X - f.Center.X) / f.Radius,
		Im: -(p.Y - f.Center.Y) / f.Radius,
	}
}

// Path converts a gamma path into drawing commands. The first sample is a
// MoveTo, every following sample a LineTo, in input order. An empty input
// gives an empty path.
func (f Frame) Path(gammas []Complex) Path {
	if len(gammas) == 0 {
		return Path{}
	}
	cmds := make([]Command, len(gammas))
	for i, g := range gammas {
		verb := VerbLineTo
		if i == 0 {
			verb = VerbMoveTo
		}
		cmds[i] = Command{Verb: verb, Point: f.ToDrawing(g)}
	}
	return Path{Commands: cmds}
}
