package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

var matchFlags loadFlags

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Request a matching network for a load",
	Long: `Send the load to the matching service and print the network it
proposes: the matching type, its component values, and the reflection
coefficient after each element together with the chart path.

Examples:
  otrf match --freq 2.4 --z 25-j10
  otrf match --freq "2400 MHz" --zr 25 --zi -10 --json`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchFlags.register(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	s, err := runSession(cmd.Context(), &matchFlags, backend.OpMatch)
	if err != nil {
		return err
	}
	if s.Result == nil {
		return errMissing(backend.OpMatch, s)
	}
	out := cmd.OutOrStdout()
	if matchFlags.json {
		return writeJSON(out, s.Result)
	}

	fmt.Fprintf(out, "Matching type: %s\n", s.Result.MatchingType)
	if entries := s.Result.Components.Entries(); len(entries) > 0 {
		fmt.Fprintln(out, "Components:")
		for _, e := range entries {
			fmt.Fprintf(out, "  %-24s %s\n", e.Label+":", e.Value)
		}
	}
	for _, step := range s.GammaSteps() {
		fmt.Fprintln(out, step)
	}
	if !s.Path.Empty() {
		fmt.Fprintf(out, "Path: %s\n", s.Path)
	}
	return nil
}
