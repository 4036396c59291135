package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/units"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between impedance and reflection coefficient",
}

var convertZCmd = &cobra.Command{
	Use:   "z IMPEDANCE",
	Short: "Impedance to reflection coefficient",
	Example: `  otrf convert z 25-j10
  otrf convert z "1.2k Ω" --z0 75`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertZ,
}

var convertGammaCmd = &cobra.Command{
	Use:     "gamma GAMMA",
	Aliases: []string{"g"},
	Short:   "Reflection coefficient to impedance",
	Example: `  otrf convert gamma 0.5-j0.25`,
	Args:    cobra.ExactArgs(1),
	RunE:    runConvertGamma,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertZCmd)
	convertCmd.AddCommand(convertGammaCmd)
}

func runConvertZ(cmd *cobra.Command, args []string) error {
	z, err := units.ParseImpedance(args[0])
	if err != nil {
		return err
	}
	t := cfg.Smith().Transform()
	gamma, err := t.Gamma(z)
	if errors.Is(err, smith.ErrSingularTransform) {
		return fmt.Errorf("impedance %s is the pole of the transform for Z0 = %g Ω", z, t.Z0)
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Z      = %s Ω\n", z)
	fmt.Fprintf(out, "z      = %s\n", t.Normalize(z))
	fmt.Fprintf(out, "Γ      = %s\n", smith.FormatGamma(gamma))
	printReflection(cmd, gamma)
	return nil
}

func runConvertGamma(cmd *cobra.Command, args []string) error {
	gamma, err := units.ParseComplex(args[0])
	if err != nil {
		return err
	}
	z, err := cfg.Smith().Transform().Impedance(gamma)
	if errors.Is(err, smith.ErrSingularTransform) {
		return errors.New(session.MsgOpenCircuit)
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Γ      = %s\n", smith.FormatGamma(gamma))
	fmt.Fprintf(out, "Z real = %s Ω\n", smith.FormatOhms(z.Re))
	fmt.Fprintf(out, "Z imag = %s Ω\n", smith.FormatOhms(z.Im))
	printReflection(cmd, gamma)
	return nil
}
