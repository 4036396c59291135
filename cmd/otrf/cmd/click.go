package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var (
	clickWidth  float64
	clickHeight float64
)

var clickCmd = &cobra.Command{
	Use:   "click X Y",
	Short: "Map a click on the chart to a reflection coefficient and impedance",
	Long: `Convert a click at (X, Y), relative to the top-left corner of the
chart's bounding box, into Γ and the load impedance, exactly as the
interactive chart does. Clicks outside the unit disk are rejected.

Examples:
  otrf click 200 200                 # centre of a 400x400 chart: 50 Ω
  otrf click 150 75 --size 300`,
	Args: cobra.ExactArgs(2),
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Float64Var(&clickWidth, "size", 2*smith.DefaultRadius, "width of the chart's bounding box")
	clickCmd.Flags().Float64Var(&clickHeight, "height", 0, "height of the bounding box (default: --size)")
}

func runClick(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid X %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid Y %q: %w", args[1], err)
	}
	h := clickHeight
	if h == 0 {
		h = clickWidth
	}

	res, err := smith.Click(smith.Box(clickWidth, h), x, y, cfg.Smith().Transform())
	switch {
	case errors.Is(err, smith.ErrOutOfDomain):
		return fmt.Errorf("(%g, %g) is outside the chart", x, y)
	case errors.Is(err, smith.ErrSingularTransform):
		return errors.New(session.MsgOpenCircuit)
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Γ      = %s\n", smith.FormatGamma(res.Gamma))
	fmt.Fprintf(out, "Z real = %s Ω\n", smith.FormatOhms(res.Impedance.Re))
	fmt.Fprintf(out, "Z imag = %s Ω\n", smith.FormatOhms(res.Impedance.Im))
	fmt.Fprintf(out, "Marker = %s\n", res.Marker)
	printReflection(cmd, res.Gamma)
	return nil
}

// printReflection prints the VSWR and return loss of gamma where defined.
func printReflection(cmd *cobra.Command, gamma smith.Complex) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "|Γ|    = %.4f\n", gamma.Abs())
	fmt.Fprintf(out, "∠Γ     = %s\n", smith.FormatAngle(gamma))
	if vswr, err := smith.VSWR(gamma); err == nil {
		fmt.Fprintf(out, "VSWR   = %.3f\n", vswr)
	}
	if rl, err := smith.ReturnLossDB(gamma); err == nil {
		fmt.Fprintf(out, "RL     = %.2f dB\n", rl)
	}
}
