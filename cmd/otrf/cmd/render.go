package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/render"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/units"
)

var (
	renderFlags  loadFlags
	renderOut    string
	renderFormat string
	renderMatch  bool
	renderSweep  bool
	renderMarker string
	renderLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw the Smith chart as SVG or PNG",
	Long: `Draw the chart grid and optionally a marker, the backend's matching
path and a frequency sweep.

Examples:
  otrf render -o chart.svg
  otrf render --marker 0.5-j0.25 -o chart.png
  otrf render --match --sweep --freq 2.4 --z 25-j10 -o match.svg`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFlags.register(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "output", "o", "", "output file (default stdout)")
	f.StringVar(&renderFormat, "format", "", "svg or png (default from the output extension, else svg)")
	f.BoolVar(&renderMatch, "match", false, "request a matching network and draw its path")
	f.BoolVar(&renderSweep, "sweep", false, "request a sweep and draw it")
	f.StringVar(&renderMarker, "marker", "", "place the marker at this reflection coefficient")
	f.BoolVar(&renderLabels, "labels", true, "annotate grid values")
}

func renderFormatFor(out, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch format {
	case "", "svg":
		return "svg", nil
	case "png":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := renderFormatFor(renderOut, renderFormat)
	if err != nil {
		return err
	}

	scene := render.NewScene(cfg.Smith())
	scene.Style.ShowLabels = renderLabels
	if renderMarker != "" {
		g, err := units.ParseComplex(renderMarker)
		if err != nil {
			return fmt.Errorf("marker: %w", err)
		}
		scene.SetGamma(g)
	}

	var ops []backend.Operation
	if renderMatch {
		ops = append(ops, backend.OpMatch)
	}
	if renderSweep {
		ops = append(ops, backend.OpSweep)
	}
	if len(ops) > 0 {
		s, err := runSession(cmd.Context(), &renderFlags, ops...)
		if err != nil {
			return err
		}
		if renderMatch && s.Result == nil {
			return errMissing(backend.OpMatch, s)
		}
		if renderSweep && s.Sweep == nil {
			return errMissing(backend.OpSweep, s)
		}
		scene.Path = s.Path
		scene.SweepPath = s.SweepPath
		if renderMarker == "" && s.Result != nil && len(s.Result.GammaPath) > 0 {
			scene.SetGamma(s.Result.GammaPath[0].Complex())
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	var f *os.File
	if renderOut != "" {
		if f, err = os.Create(renderOut); err != nil {
			return err
		}
		w = f
	}
	if format == "png" {
		err = render.WritePNG(w, scene)
	} else {
		err = render.WriteSVG(w, scene)
	}
	if f != nil {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err == nil && renderOut != "" {
		log.Infof("wrote %s chart to %s", format, renderOut)
	}
	return err
}
