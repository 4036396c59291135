package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/export"
	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

var (
	exportFlags loadFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run every backend operation and save the results as a workbook",
	Long: `Request a matching network, S-parameters, a topology prediction and a
sweep for one load and write them to an Excel workbook, one sheet per
result. Operations that fail are left out of the workbook.

Examples:
  otrf export --freq 2.4 --z 25-j10 -o report.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "report.xlsx", "workbook file")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := runSession(cmd.Context(), &exportFlags,
		backend.OpMatch, backend.OpSParameters, backend.OpPredict, backend.OpSweep)
	if err != nil {
		return err
	}
	if s.Result == nil && s.SParameters == nil && s.Prediction == nil && s.Sweep == nil {
		return errMissing("export", s)
	}
	if s.Error != "" {
		log.Warnf("some operations failed: %s", s.Error)
	}

	req, err := session.Validate(s.Form)
	if err != nil {
		return err
	}
	report := export.Report{
		Request:     req,
		Z0:          cfg.Z0,
		Match:       s.Result,
		SParameters: s.SParameters,
		Prediction:  s.Prediction,
		Sweep:       s.Sweep,
	}
	if err := export.Save(exportOut, report); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOut)
	return nil
}
