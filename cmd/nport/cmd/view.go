package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/pkg/chart"
	"github.com/edp1096/nport/pkg/touchstone"
)

var viewOut string

var viewCmd = &cobra.Command{
	Use:   "view <file.sNp>",
	Short: "Write an interactive HTML chart of the S-parameters",
	Long: `Chart |Sij| in dB and the phase of Sij in degrees against frequency on
an HTML page that opens in any browser.

Examples:
  nport view stripline.s2p
  nport view --out filter.html filter.s2p`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVarP(&viewOut, "out", "o", "sparams.html", "output page")
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]

	n, _, err := touchstone.ReadFile(path, touchstone.WithLogger(logger))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := chart.SParametersHTML(&buf, n, filepath.Base(path)); err != nil {
		return err
	}
	if err := os.WriteFile(viewOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}

	logger.Debug("chart written", "ports", n.Ports(), "points", n.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", viewOut)

	return nil
}
