package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/render"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var (
	sweepFlags loadFlags
	sweepPlot  string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Request a frequency sweep of the matched load",
	Long: `Ask the matching service for the reflection coefficient of the matched
load across a band around the given frequency. The sweep can also be
plotted as |Γ| over frequency.

Examples:
  otrf sweep --freq 2.4 --z 25-j10
  otrf sweep --freq 2.4 --z 25-j10 --plot sweep.png`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepFlags.register(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepPlot, "plot", "", "write a PNG plot of |Γ| over frequency")
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := runSession(cmd.Context(), &sweepFlags, backend.OpSweep)
	if err != nil {
		return err
	}
	if s.Sweep == nil {
		return errMissing(backend.OpSweep, s)
	}
	out := cmd.OutOrStdout()
	if sweepFlags.json {
		return writeJSON(out, s.Sweep)
	}

	fmt.Fprintf(out, "%-14s %-22s %-8s %s\n", "Frequency GHz", "Γ", "|Γ|", "VSWR")
	for _, p := range s.Sweep.Points {
		g := p.Gamma.Complex()
		vswr := "inf"
		if v, err := smith.VSWR(g); err == nil {
			vswr = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(out, "%-14.4f %-22s %-8.3f %s\n", p.Frequency, smith.FormatGamma(g), g.Abs(), vswr)
	}
	if sum, err := render.Summarize(s.Sweep); err == nil {
		fmt.Fprintf(out, "Best match: |Γ| = %.3f at %.4f GHz\n", sum.Magnitudes[sum.Best], sum.Frequencies[sum.Best])
	}

	if sweepPlot == "" {
		return nil
	}
	f, err := os.Create(sweepPlot)
	if err != nil {
		return err
	}
	if err := render.WriteSweepPlot(f, s.Sweep, render.DefaultPlotOptions()); err != nil {
		f.Close()
		return fmt.Errorf("failed to plot sweep: %w", err)
	}
	return f.Close()
}
