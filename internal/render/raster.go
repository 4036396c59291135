package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// canvas strokes polylines onto an RGBA image. Every stroke is built from
// segment quads and vertex caps of the same winding so overlaps never
// cancel in the rasterizer's accumulation buffer.
type canvas struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	size int
}

func newCanvas(size int, bg color.RGBA) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{img: img, z: vector.NewRasterizer(size, size), size: size}
}

// polygon adds a closed polygon to the current rasterizer path.
func (c *canvas) polygon(pts ...smith.Point) {
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
}

// disc adds a filled circle approximated by a regular polygon.
func (c *canvas) disc(center smith.Point, r float64) {
	const n = 12
	pts := make([]smith.Point, n)
	for i := range pts {
		// same winding as the segment quads
		t := -2 * math.Pi * float64(i) / n
		pts[i] = smith.Point{X: center.X + r*math.Cos(t), Y: center.Y + r*math.Sin(t)}
	}
	c.polygon(pts...)
}

func (c *canvas) flush(col color.RGBA) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	c.z.Reset(c.size, c.size)
}

// stroke draws a polyline of the given width and colour.
func (c *canvas) stroke(pts []smith.Point, width float64, col color.RGBA) {
	if len(pts) == 0 {
		return
	}
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		c.polygon(
			smith.Point{X: p0.X + nx, Y: p0.Y + ny},
			smith.Point{X: p1.X + nx, Y: p1.Y + ny},
			smith.Point{X: p1.X - nx, Y: p1.Y - ny},
			smith.Point{X: p0.X - nx, Y: p0.Y - ny},
		)
	}
	for _, p := range pts {
		c.disc(p, hw)
	}
	c.flush(col)
}

func (c *canvas) fill(center smith.Point, r float64, col color.RGBA) {
	c.disc(center, r)
	c.flush(col)
}

func (c *canvas) text(at smith.Point, s string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(at.X), int(at.Y)),
	}
	d.DrawString(s)
}

// circlePoints samples a full circle as a closed polyline.
func circlePoints(ci smith.Circle, n int) []smith.Point {
	pts := make([]smith.Point, n+1)
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = smith.Point{X: ci.Center.X + ci.Radius*math.Cos(t), Y: ci.Center.Y + ci.Radius*math.Sin(t)}
	}
	return pts
}

// Rasterize draws the scene onto a square image of side Size().
func Rasterize(s Scene) *image.RGBA {
	st := s.Style
	size := int(math.Ceil(s.Size()))
	if size < 1 {
		size = 1
	}
	segs := st.ArcSegments
	if segs < 8 {
		segs = 8
	}
	c := newCanvas(size, st.Background)

	for _, p := range s.Geometry.Grid() {
		switch v := p.(type) {
		case smith.Circle:
			c.stroke(circlePoints(v, segs), st.GridWidth, st.Grid)
		case smith.Arc:
			c.stroke(v.Sample(segs), st.GridWidth, st.Grid)
		}
	}
	c.stroke(circlePoints(s.Geometry.Rim(), 2*segs), st.RimWidth, st.Rim)

	for _, l := range s.labels() {
		c.text(l.At, l.Text, st.Label)
	}
	if !s.SweepPath.Empty() {
		c.stroke(s.SweepPath.Points(), st.PathWidth, st.Sweep)
	}
	if !s.Path.Empty() {
		c.stroke(s.Path.Points(), st.PathWidth, st.Path)
	}
	if s.Marker != nil {
		c.fill(*s.Marker, st.MarkerSize, st.Marker)
	}
	return c.img
}

// WritePNG encodes the rasterized scene as PNG.
func WritePNG(w io.Writer, s Scene) error {
	return png.Encode(w, Rasterize(s))
}
