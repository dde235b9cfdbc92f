package cmd

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards/vvml"
	"github.com/spf13/cobra"
)

var (
	descriptorMode   string
	descriptorOutput string
)

var descriptorCmd = &cobra.Command{
	Use:   "descriptor <bitstream>",
	Short: "Generate a pgrcmd XCF descriptor",
	Long: `Render the pgrcmd XCF descriptor for a bitstream. The bitstream path is
inserted as given; the file does not need to exist.

Modes:
  direct   load the bitstream into SRAM over JTAG
  flash    erase, program and verify the SPI flash through the FPGA

Examples:
  vvml descriptor build/top.bit
  vvml descriptor --mode flash -o build/top.xcf build/top.bit`,
	Args: cobra.ExactArgs(1),
	RunE: runDescriptor,
}

func init() {
	rootCmd.AddCommand(descriptorCmd)

	descriptorCmd.Flags().StringVarP(&descriptorMode, "mode", "m", "",
		"programming mode: direct or flash (default from config)")
	descriptorCmd.Flags().StringVarP(&descriptorOutput, "output", "o", "",
		"write the descriptor to a file instead of stdout")
}

func runDescriptor(cmd *cobra.Command, args []string) error {
	mode, err := resolveMode(descriptorMode, loadConfig())
	if err != nil {
		return err
	}

	xcf, err := vvml.BuildDescriptor(mode, args[0])
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(descriptorOutput)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xcf); err != nil {
		closeOut()
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := closeOut(); err != nil {
		return err
	}

	if verbose && descriptorOutput != "" {
		fmt.Printf("Wrote %s descriptor to %s\n", mode, descriptorOutput)
	}
	return nil
}
