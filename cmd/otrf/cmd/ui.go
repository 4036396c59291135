package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive Smith chart",
	Long: `Open a window with a clickable Smith chart and the load form. Clicking
the chart fills in the impedance; the actions send it to the matching
backend and draw the returned path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := session.NewStore(session.NewReducer(cfg.Smith()))
		ctrl := session.NewController(store, service())
		log.Infof("starting UI against %s", cfg.BackendURL)
		return ui.Run(cmd.Context(), ctrl, cfg.Smith())
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
