package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/internal/consts"
	"github.com/edp1096/nport/pkg/netlist"
	"github.com/edp1096/nport/pkg/network"
	"github.com/edp1096/nport/pkg/synth"
	"github.com/edp1096/nport/pkg/touchstone"
)

var synthFlags struct {
	r, l, g, c string
	length     float64
	fstart     string
	fstop      string
	points     int
	sweep      string
	z0         float64
	format     string
	out        string
	precision  int
}

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Write the S-parameters of an ideal uniform line",
	Long: `Generate the two-port S-parameters of a uniform line with the given
per-unit-length R, L, G and C. Values accept SPICE suffixes (250n, 100p).

Examples:
  nport synth --l 250n --c 100p --length 0.1 --out line
  nport synth --r 5 --l 300n --g 100u --c 120p --length 0.05 --sweep DEC --points 31 --fstart 1meg --fstop 10g --out lossy`,
	Args: cobra.NoArgs,
	RunE: runSynth,
}

func init() {
	rootCmd.AddCommand(synthCmd)

	f := synthCmd.Flags()
	f.StringVar(&synthFlags.r, "r", "0", "resistance per meter (ohm/m)")
	f.StringVar(&synthFlags.l, "l", "0", "inductance per meter (H/m)")
	f.StringVar(&synthFlags.g, "g", "0", "conductance per meter (S/m)")
	f.StringVar(&synthFlags.c, "c", "0", "capacitance per meter (F/m)")
	f.Float64Var(&synthFlags.length, "length", 0, "line length in meters (required)")
	f.StringVar(&synthFlags.fstart, "fstart", "1meg", "start frequency (Hz)")
	f.StringVar(&synthFlags.fstop, "fstop", "1g", "stop frequency (Hz)")
	f.IntVar(&synthFlags.points, "points", 101, "number of frequency points")
	f.StringVar(&synthFlags.sweep, "sweep", "LIN", "sweep type: LIN, DEC or OCT")
	f.Float64Var(&synthFlags.z0, "z0", consts.DefaultZ0, "reference impedance (ohm)")
	f.StringVar(&synthFlags.format, "format", "RI", "output format: RI, MA or DB")
	f.StringVarP(&synthFlags.out, "out", "o", "line", "output path without the .s2p extension")
	f.IntVar(&synthFlags.precision, "precision", 0, "significant digits (0 writes the shortest exact form)")
	synthCmd.MarkFlagRequired("length")
}

func runSynth(cmd *cobra.Command, args []string) error {
	values := make(map[string]float64)
	for name, text := range map[string]string{
		"r":      synthFlags.r,
		"l":      synthFlags.l,
		"g":      synthFlags.g,
		"c":      synthFlags.c,
		"fstart": synthFlags.fstart,
		"fstop":  synthFlags.fstop,
	} {
		v, err := netlist.ParseValue(text)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		values[name] = v
	}
	if !(synthFlags.z0 > 0) {
		return fmt.Errorf("--z0 must be positive: %g", synthFlags.z0)
	}

	format, err := touchstone.ParseFormat(synthFlags.format)
	if err != nil {
		return err
	}

	freqs, err := synth.Sweep(synthFlags.sweep, values["fstart"], values["fstop"], synthFlags.points)
	if err != nil {
		return err
	}

	rlgc := synth.RLGC{R: values["r"], L: values["l"], G: values["g"], C: values["c"]}
	abcd, err := synth.Line(rlgc, synthFlags.length, freqs, synthFlags.z0)
	if err != nil {
		return err
	}
	s, err := abcd.Convert(network.Scattering)
	if err != nil {
		return err
	}

	path, err := touchstone.WriteFile(s, synthFlags.out, format, touchstone.WithPrecision(synthFlags.precision))
	if err != nil {
		return err
	}
	logger.Debug("synthesized line", "rlgc", rlgc, "length", synthFlags.length, "points", len(freqs))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d points)\n", path, len(freqs))

	return nil
}
