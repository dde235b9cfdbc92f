package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
	"github.com/spf13/cobra"
)

var (
	programMode   string
	programTool   string
	programXCF    string
	programDryRun bool
)

var programCmd = &cobra.Command{
	Use:   "program <bitstream>",
	Short: "Program the board with pgrcmd",
	Long: `Write the XCF descriptor next to the bitstream (top.bit -> top.xcf) and run
pgrcmd on it. The programmer command line comes from --tool, the config file,
or defaults to "pgrcmd" on PATH.

Examples:
  vvml program build/top.bit
  vvml program --mode flash build/top.bit
  vvml program --tool 'wine "C:/lscc/radiant/2023.2/programmer/bin/nt64/pgrcmd.exe"' build/top.bit
  vvml program --dry-run --xcf /tmp/top.xcf build/top.bit`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(programCmd)

	programCmd.Flags().StringVarP(&programMode, "mode", "m", "",
		"programming mode: direct or flash (default from config)")
	programCmd.Flags().StringVar(&programTool, "tool", "",
		"programmer command line (default from config)")
	programCmd.Flags().StringVar(&programXCF, "xcf", "",
		"descriptor path (default: bitstream path with .xcf extension)")
	programCmd.Flags().BoolVarP(&programDryRun, "dry-run", "n", false,
		"write the descriptor and print the command without running it")
}

func runProgram(cmd *cobra.Command, args []string) error {
	bitstream := args[0]
	cfg := loadConfig()

	mode, err := resolveMode(programMode, cfg)
	if err != nil {
		return err
	}
	if !programDryRun {
		if _, err := os.Stat(bitstream); err != nil {
			return fmt.Errorf("bitstream: %w", err)
		}
	}

	board, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	tool := programTool
	if tool == "" {
		tool = cfg.ProgrammerTool
	}
	prog, err := board.CreateProgrammer(mode, &lattice.Options{
		Tool:    tool,
		XCFPath: programXCF,
		DryRun:  programDryRun,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Programming %s (%s mode)\n", bitstream, mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	xcfPath, err := prog.LoadBitstream(ctx, bitstream)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Descriptor: %s\n", xcfPath)
	}
	if !programDryRun {
		fmt.Printf("Programmed %s (%s)\n", bitstream, mode)
	}
	return nil
}
