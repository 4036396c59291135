package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/config"
	"github.com/OpenTraceLab/OpenTraceRF/internal/logging"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

var (
	// Global flags
	verbose    bool
	configFile string
	simulate   bool

	// cfg is loaded before every command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "otrf",
	Short: "OpenTraceRF - Smith chart impedance matching client",
	Long: `OpenTraceRF (otrf) is a client for an RF impedance-matching service.
It maps between impedance and reflection coefficient, draws the Smith chart,
and asks the matching backend for networks, S-parameters, predictions and
frequency sweeps.

Examples:
  otrf ui                                       # Launch the interactive chart
  otrf click 300 200                            # Chart click to impedance
  otrf convert z 25-j10                         # Impedance to reflection coefficient
  otrf match --freq 2.4 --z 25-j10              # Ask the backend for a network
  otrf --sim sweep --freq 2.4 --z 25-j10        # Offline, against the simulator
  otrf render --match --freq 2.4 --z 25-j10 -o chart.svg`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	flags.StringVar(&configFile, "config", "", "config file (default ~/.config/opentracerf/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("backend", "", "matching service base URL")
	flags.Duration("timeout", 0, "backend request timeout")
	flags.Float64("z0", 0, "reference impedance in ohms")
	flags.BoolVar(&simulate, "sim", false, "use the built-in simulated backend instead of --backend")
}

// flagKeys binds persistent flags to config keys. Unset flags fall through
// to the environment, the config file and the defaults.
var flagKeys = map[string]string{
	"log-level": config.KeyLogLevel,
	"backend":   config.KeyBackendURL,
	"timeout":   config.KeyTimeout,
	"z0":        config.KeyZ0,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	v := config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	loaded, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.SetLevel(level)
}

// service returns the matching service commands talk to.
func service() backend.Service {
	if simulate {
		log.Debugf("using simulated backend")
		return backend.NewSimService(cfg.Z0)
	}
	return cfg.Client()
}
