package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/pkg/tline"
	"github.com/edp1096/nport/pkg/touchstone"
	"github.com/edp1096/nport/pkg/util"
)

// lineFlags are shared by extract and plot.
type lineFlags struct {
	length  float64
	branch  string
	formula string
}

func (f *lineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.length, "length", "l", 0, "physical line length in meters (required)")
	cmd.Flags().StringVarP(&f.branch, "branch", "b", "forward", "propagation branch: forward or backward")
	cmd.Flags().StringVar(&f.formula, "formula", "c", "characteristic impedance formula: c (from C) or b (from B)")
	cmd.MarkFlagRequired("length")
}

// load reads a two-port file and extracts the selected branch.
func (f *lineFlags) load(path string) (*tline.TransmissionLine, tline.Branch, error) {
	var formula tline.ImpedanceFormula
	switch strings.ToLower(f.formula) {
	case "c":
		formula = tline.FromC
	case "b":
		formula = tline.FromB
	default:
		return nil, tline.Branch{}, fmt.Errorf("unknown impedance formula %q (want c or b)", f.formula)
	}

	n, _, err := touchstone.ReadFile(path, touchstone.WithLogger(logger))
	if err != nil {
		return nil, tline.Branch{}, err
	}

	tl, err := tline.New(n, f.length, tline.WithImpedanceFormula(formula), tline.WithLogger(logger))
	if err != nil {
		return nil, tline.Branch{}, fmt.Errorf("%s: %w", path, err)
	}

	switch strings.ToLower(f.branch) {
	case "forward", "f":
		return tl, tl.Forward(), nil
	case "backward", "b":
		return tl, tl.Backward(), nil
	}
	return nil, tline.Branch{}, fmt.Errorf("unknown branch %q (want forward or backward)", f.branch)
}

var extractFlags lineFlags

var extractCmd = &cobra.Command{
	Use:   "extract <file.s2p>",
	Short: "Extract gamma, Z0 and per-unit-length RLGC of a line",
	Long: `Extract the propagation constant, characteristic impedance and the
per-unit-length resistance, inductance, conductance and capacitance of a
uniform transmission line from its two-port S-parameters.

Examples:
  nport extract --length 0.05 stripline.s2p
  nport extract --length 0.05 --branch backward --formula b stripline.s2p`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractFlags.register(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	tl, b, err := extractFlags.load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	gamma, z0 := b.Gamma(), b.Z0()
	r, l, g, c := b.R(), b.L(), b.G(), b.C()

	fmt.Fprintf(out, "%-13s %-24s %-24s %-14s %-14s %-14s %-14s\n",
		"Frequency", "Gamma (1/m)", "Z0 (ohm)", "R", "L", "G", "C")
	fmt.Fprintln(out, strings.Repeat("-", 127))
	for i, f := range tl.Freqs() {
		fmt.Fprintf(out, "%-13s %-24s %-24s %-14s %-14s %-14s %-14s\n",
			util.FormatFrequency(f),
			util.FormatComplex(gamma[i]),
			util.FormatComplex(z0[i]),
			util.FormatValueFactor(r[i], "Ω/m"),
			util.FormatValueFactor(l[i], "H/m"),
			util.FormatValueFactor(g[i], "S/m"),
			util.FormatValueFactor(c[i], "F/m"))
	}

	if bad := b.NonFinite(); len(bad) > 0 {
		fmt.Fprintf(out, "\n%d of %d points are not finite\n", len(bad), len(tl.Freqs()))
	}
	return nil
}
