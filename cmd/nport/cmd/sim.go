package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/pkg/analysis"
	"github.com/edp1096/nport/pkg/netlist"
	"github.com/edp1096/nport/pkg/touchstone"
)

var (
	simOut       string
	simFormat    string
	simPrecision int
)

var simCmd = &cobra.Command{
	Use:   "sim <netlist>",
	Short: "Simulate the S-parameters of a passive netlist",
	Long: `Simulate the ports of an R, L, C and K netlist over its .ac sweep and
write the result as Touchstone.

Netlist:
  * 3 dB pi attenuator
  R1 in 0 292.4
  R2 in out 17.6
  R3 out 0 292.4
  .port in 0
  .port out 0
  .ac LIN 11 0 1g
  .z0 50

Examples:
  nport sim attenuator.cir
  nport sim --format DB --out build/attenuator attenuator.cir`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVarP(&simOut, "out", "o", "", "output path without the .sNp extension (default: netlist name)")
	simCmd.Flags().StringVarP(&simFormat, "format", "f", "MA", "output format: RI, MA or DB")
	simCmd.Flags().IntVarP(&simPrecision, "precision", "p", 0,
		"significant digits (0 writes the shortest exact form)")
}

func runSim(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := touchstone.ParseFormat(simFormat)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading netlist file: %w", err)
	}

	data, err := netlist.Parse(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("netlist parsed", "file", path, "title", data.Title, "elements", len(data.Elements), "ports", len(data.Ports()))

	n, err := analysis.Simulate(data, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	base := simOut
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}
	written, err := touchstone.WriteFile(n, base, format, touchstone.WithPrecision(simPrecision))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d ports, %d points)\n", written, n.Ports(), n.Len())

	return nil
}
