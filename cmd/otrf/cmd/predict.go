package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

var predictFlags loadFlags

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Ask which matching topology suits a load",
	Long: `Ask the matching service's classifier which network type it would
pick for the load, and how confident it is.

Examples:
  otrf predict --freq 2.4 --z 25-j10`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictFlags.register(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	s, err := runSession(cmd.Context(), &predictFlags, backend.OpPredict)
	if err != nil {
		return err
	}
	if s.Prediction == nil {
		return errMissing(backend.OpPredict, s)
	}
	out := cmd.OutOrStdout()
	if predictFlags.json {
		return writeJSON(out, s.Prediction)
	}
	fmt.Fprintf(out, "Predicted type: %s (confidence %.0f%%)\n",
		s.Prediction.PredictedType, 100*s.Prediction.Confidence)
	return nil
}
