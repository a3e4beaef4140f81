package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/nport/pkg/touchstone"
	"github.com/edp1096/nport/pkg/util"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.sNp>...",
	Short: "Show ports, sweep and options of Touchstone files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for i, path := range args {
		n, opts, err := touchstone.ReadFile(path, touchstone.WithLogger(logger))
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "File:    %s\n", path)
		fmt.Fprintf(out, "Ports:   %d\n", n.Ports())
		fmt.Fprintf(out, "Points:  %d\n", n.Len())
		if freqs := n.Frequencies(); len(freqs) > 0 {
			fmt.Fprintf(out, "Sweep:   %s .. %s\n",
				strings.TrimSpace(util.FormatFrequency(freqs[0])),
				strings.TrimSpace(util.FormatFrequency(freqs[len(freqs)-1])))
		}
		fmt.Fprintf(out, "Options: %s\n", opts)
	}

	return nil
}
