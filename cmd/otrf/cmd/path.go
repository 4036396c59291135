package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/units"
)

var pathCmd = &cobra.Command{
	Use:   "path GAMMA...",
	Short: "Turn a sequence of reflection coefficients into an SVG path",
	Long: `Map each reflection coefficient to drawing coordinates and print the
polyline as an SVG path "d" attribute, in the order given.

Examples:
  otrf path 0.5 0.2 0          # M 300 200 L 240 200 L 200 200`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	gammas := make([]smith.Complex, len(args))
	for i, arg := range args {
		g, err := units.ParseComplex(arg)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		gammas[i] = g
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Smith().Frame().Path(gammas))
	return nil
}
