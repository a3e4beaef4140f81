package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "nport",
	Short: "Touchstone n-port toolkit and transmission-line RLGC extractor",
	Long: `Read, convert and generate Touchstone (.sNp) files and extract the
per-unit-length R, L, G and C of a uniform transmission line from its
two-port S-parameters.

Examples:
  nport info cable.s2p                              # Show ports, sweep and options
  nport convert --format RI --out ri/ *.s2p         # Rewrite files as real/imaginary
  nport extract --length 0.1 cable.s2p              # Tabulate gamma, Z0 and RLGC
  nport synth --l 250n --c 100p --length 0.1 --out line
  nport sim filter.cir                              # Netlist to Touchstone
  nport plot --length 0.1 --out rlgc.png cable.s2p  # Chart RLGC against frequency`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}
