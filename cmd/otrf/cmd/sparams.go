package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var sparamsFlags loadFlags

var sparamsCmd = &cobra.Command{
	Use:   "sparams",
	Short: "Request the S-parameters of the matched network",
	Long: `Ask the matching service for the two-port S-parameters of the network
it would use for the load.

Examples:
  otrf sparams --freq 2.4 --z 25-j10`,
	RunE: runSParams,
}

func init() {
	rootCmd.AddCommand(sparamsCmd)
	sparamsFlags.register(sparamsCmd)
}

func runSParams(cmd *cobra.Command, args []string) error {
	s, err := runSession(cmd.Context(), &sparamsFlags, backend.OpSParameters)
	if err != nil {
		return err
	}
	if s.SParameters == nil {
		return errMissing(backend.OpSParameters, s)
	}
	out := cmd.OutOrStdout()
	if sparamsFlags.json {
		return writeJSON(out, s.SParameters)
	}
	sp := s.SParameters
	for _, p := range []struct {
		name string
		v    backend.Pair
	}{{"S11", sp.S11}, {"S12", sp.S12}, {"S21", sp.S21}, {"S22", sp.S22}} {
		c := p.v.Complex()
		db := math.Inf(-1)
		if mag := c.Abs(); mag > 0 {
			db = 20 * math.Log10(mag)
		}
		fmt.Fprintf(out, "%s = %s  (%.2f dB)\n", p.name, smith.FormatGamma(c), db)
	}
	return nil
}
