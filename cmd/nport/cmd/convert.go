package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/pkg/touchstone"
)

var (
	convertFormat    string
	convertOut       string
	convertPrecision int
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.sNp>...",
	Short: "Rewrite Touchstone files in another number format",
	Long: `Rewrite Touchstone files as RI (real/imaginary), MA (magnitude/angle)
or DB (dB/angle) pairs with frequencies in Hz. Each file is written as
<name>_<format>.sNp, next to the input unless --out names a directory.

Examples:
  nport convert --format RI cable.s2p
  nport convert --format DB --precision 6 --out db/ a.s2p b.s4p`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "RI", "output format: RI, MA or DB")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output directory")
	convertCmd.Flags().IntVarP(&convertPrecision, "precision", "p", 0,
		"significant digits (0 writes the shortest exact form)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := touchstone.ParseFormat(convertFormat)
	if err != nil {
		return err
	}

	for _, path := range args {
		n, _, err := touchstone.ReadFile(path, touchstone.WithLogger(logger))
		if err != nil {
			return err
		}

		dir := convertOut
		if dir == "" {
			dir = filepath.Dir(path)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		base := filepath.Join(dir, name+"_"+strings.ToLower(format.String()))

		written, err := touchstone.WriteFile(n, base, format, touchstone.WithPrecision(convertPrecision))
		if err != nil {
			return err
		}
		logger.Debug("converted", "from", path, "to", written, "format", format.String())
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, written)
	}

	return nil
}
