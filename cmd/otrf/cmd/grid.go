package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var gridJSON bool

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "List the chart's grid primitives in drawing coordinates",
	Long: `List the constant-resistance circles and constant-reactance arcs of the
chart for the configured radius and reference values.

Examples:
  otrf grid
  otrf grid --json
  OTRF_RADIUS=150 otrf grid`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().BoolVar(&gridJSON, "json", false, "output as JSON")
}

// gridEntry is the JSON form of one primitive.
type gridEntry struct {
	Kind   string  `json:"kind"`
	Value  float64 `json:"value"`
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	R      float64 `json:"r,omitempty"`
	Path   string  `json:"d,omitempty"`
	Sweep  bool    `json:"sweep,omitempty"`
	StartX float64 `json:"x1,omitempty"`
	StartY float64 `json:"y1,omitempty"`
	EndX   float64 `json:"x2,omitempty"`
	EndY   float64 `json:"y2,omitempty"`
}

func gridEntries(prims []smith.Primitive) []gridEntry {
	entries := make([]gridEntry, 0, len(prims))
	for _, p := range prims {
		e := gridEntry{Kind: p.Kind().String(), Value: p.Value()}
		switch p := p.(type) {
		case smith.Circle:
			e.CX, e.CY, e.R = p.Center.X, p.Center.Y, p.Radius
		case smith.Arc:
			e.R, e.Sweep, e.Path = p.Radius, p.Sweep, p.SVGPath()
			e.StartX, e.StartY = p.Start.X, p.Start.Y
			e.EndX, e.EndY = p.End.X, p.End.Y
		}
		entries = append(entries, e)
	}
	return entries
}

func runGrid(cmd *cobra.Command, args []string) error {
	prims := cfg.Smith().Geometry().Grid()
	out := cmd.OutOrStdout()
	if gridJSON {
		return writeJSON(out, gridEntries(prims))
	}
	for _, p := range prims {
		switch p := p.(type) {
		case smith.Circle:
			fmt.Fprintf(out, "%-7s r=%-5g center=(%g, %g) radius=%g\n", p.Kind(), p.Value(), p.Center.X, p.Center.Y, p.Radius)
		case smith.Arc:
			fmt.Fprintf(out, "%-7s x=%-5g %s\n", p.Kind(), p.Value(), p.SVGPath())
		}
	}
	return nil
}
