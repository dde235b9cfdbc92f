package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceBoards/internal/config"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards/vvml"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	device    string
	toolchain string
)

var rootCmd = &cobra.Command{
	Use:   "vvml",
	Short: "Lattice CrossLink-NX VVML board support",
	Long: `Board support for the Lattice CrossLink-NX VVML development board
(LIFCL-40-8MG289C): pin and connector tables, physical constraints and
pgrcmd programming descriptors.

Examples:
  vvml info                                      # Board identity and clocks
  vvml pins --connectors                         # Dump pin and connector tables
  vvml descriptor --mode flash build/top.bit     # Print the XCF for SPI flash
  vvml program build/top.bit                     # Load a bitstream into SRAM
  vvml check --bsdl LIFCL_40_CABGA289.bsm        # Cross-check against a BSDL file`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&device, "device", "",
		"device family (default LIFCL)")
	rootCmd.PersistentFlags().StringVar(&toolchain, "toolchain", "",
		"toolchain: radiant or oxide (default from config)")
}

// loadConfig reads the user config. A broken config file is reported but
// does not stop the command.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		return config.Default()
	}
	if verbose {
		if path, err := config.Path(); err == nil {
			fmt.Printf("Config: %s\n", path)
		}
	}
	return cfg
}

// loadBoard builds the board platform from flags, falling back to config.
func loadBoard(cfg *config.Config) (*vvml.Platform, error) {
	tc := toolchain
	if tc == "" {
		tc = cfg.Toolchain
	}
	board, err := vvml.New(device, tc)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Board: %s (%s)\n", board.Device, board.Toolchain)
	}
	return board, nil
}

// resolveMode picks the programming mode from the flag or the config.
func resolveMode(flag string, cfg *config.Config) (lattice.Mode, error) {
	if flag == "" {
		flag = cfg.DefaultMode
	}
	return lattice.ParseMode(flag)
}

// openOutput returns stdout for an empty path, otherwise a created file.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}
