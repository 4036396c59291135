package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the client configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after files, environment and flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s = %s\n", config.KeyBackendURL, cfg.BackendURL)
		fmt.Fprintf(out, "%s = %s\n", config.KeyTimeout, cfg.Timeout)
		fmt.Fprintf(out, "%s = %g\n", config.KeyZ0, cfg.Z0)
		fmt.Fprintf(out, "%s = %g\n", config.KeyRadius, cfg.ChartRadius)
		fmt.Fprintf(out, "%s = %v\n", config.KeyResistances, cfg.Resistances)
		fmt.Fprintf(out, "%s = %v\n", config.KeyReactances, cfg.Reactances)
		fmt.Fprintf(out, "%s = %s\n", config.KeyLogLevel, cfg.LogLevel)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write the effective settings to a config file",
	Long: `Write the effective settings to FILE, or to config.yaml in the default
config directory. The format follows the file extension (yaml, json, toml).

Examples:
  otrf --z0 75 config init
  otrf config init ./otrf.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.Save(cfg.Settings(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
