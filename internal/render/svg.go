package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WriteSVG writes the scene as a standalone SVG document. Grid arcs use the
// SVG arc command; the matching and sweep paths use their move/line commands.
func WriteSVG(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)
	st := s.Style
	size := s.Size()

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		size, size, size, size)
	fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(st.Background))

	rim := s.Geometry.Rim()
	fmt.Fprintf(bw, `  <circle cx="%g" cy="%g" r="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
		rim.Center.X, rim.Center.Y, rim.Radius, hex(st.Rim), st.RimWidth)

	fmt.Fprintf(bw, `  <g fill="none" stroke="%s" stroke-width="%g">`+"\n", hex(st.Grid), st.GridWidth)
	for _, p := range s.Geometry.Grid() {
		switch v := p.(type) {
		case smith.Circle:
			fmt.Fprintf(bw, `    <circle cx="%g" cy="%g" r="%g"/>`+"\n", v.Center.X, v.Center.Y, v.Radius)
		case smith.Arc:
			fmt.Fprintf(bw, `    <path d="%s"/>`+"\n", v.SVGPath())
		}
	}
	fmt.Fprintf(bw, "  </g>\n")

	if labels := s.labels(); len(labels) > 0 {
		fmt.Fprintf(bw, `  <g font-family="sans-serif" font-size="10" fill="%s">`+"\n", hex(st.Label))
		for _, l := range labels {
			fmt.Fprintf(bw, `    <text x="%.1f" y="%.1f">%s</text>`+"\n", l.At.X, l.At.Y, l.Text)
		}
		fmt.Fprintf(bw, "  </g>\n")
	}

	if !s.SweepPath.Empty() {
		fmt.Fprintf(bw, `  <path d="%s" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			s.SweepPath.String(), hex(st.Sweep), st.PathWidth)
	}
	if !s.Path.Empty() {
		fmt.Fprintf(bw, `  <path d="%s" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			s.Path.String(), hex(st.Path), st.PathWidth)
	}
	if s.Marker != nil {
		fmt.Fprintf(bw, `  <circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n",
			s.Marker.X, s.Marker.Y, st.MarkerSize, hex(st.Marker))
	}
	fmt.Fprintf(bw, "</svg>\n")
	return bw.Flush()
}
