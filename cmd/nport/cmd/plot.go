package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/nport/pkg/chart"
)

var (
	plotFlags  lineFlags
	plotOut    string
	plotWidth  float64
	plotHeight float64
)

var plotCmd = &cobra.Command{
	Use:   "plot <file.s2p>",
	Short: "Chart the extracted RLGC against frequency",
	Long: `Extract the per-unit-length R, L, G and C of a line and draw them on a
2x2 grid. The image format follows the --out extension: png, jpg, svg, pdf,
eps or tif.

Examples:
  nport plot --length 0.05 stripline.s2p
  nport plot --length 0.05 --out rlgc.svg --width 30 --height 20 stripline.s2p`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotFlags.register(plotCmd)

	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "rlgc.png", "output image")
	plotCmd.Flags().Float64Var(&plotWidth, "width", 24, "image width in cm")
	plotCmd.Flags().Float64Var(&plotHeight, "height", 18, "image height in cm")
}

func runPlot(cmd *cobra.Command, args []string) error {
	path := args[0]

	tl, b, err := plotFlags.load(path)
	if err != nil {
		return err
	}

	grid, err := chart.RLGC(b, tl.Freqs(), filepath.Base(path))
	if err != nil {
		return err
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(plotOut)), ".")
	var buf bytes.Buffer
	if err := chart.Render(&buf, grid, format, vg.Length(plotWidth)*vg.Centimeter, vg.Length(plotHeight)*vg.Centimeter); err != nil {
		return err
	}
	if err := os.WriteFile(plotOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", plotOut)

	return nil
}
