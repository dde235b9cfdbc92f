package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards/vvml"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/idcode"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show board identity and table summary",
	Long: `Show the target device, toolchain, default clock, JTAG IDCODE and the size
of the pin and connector tables.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(loadConfig())
	if err != nil {
		return err
	}

	assignments, err := board.Assignments()
	if err != nil {
		return err
	}

	id := idcode.Parse(vvml.IDCode)
	mfg, _ := idcode.LookupManufacturer(id.ManufacturerCode)

	fmt.Printf("Board:       Lattice CrossLink-NX VVML\n")
	fmt.Printf("Device:      %s\n", board.Device)
	fmt.Printf("Toolchain:   %s\n", board.Toolchain)
	fmt.Printf("Clock:       %s (%.3f ns, %.3f MHz)\n",
		board.DefaultClkName, board.DefaultClkPeriod, 1e3/board.DefaultClkPeriod)
	fmt.Printf("IDCODE:      %s\n", idcode.Describe(id))
	fmt.Printf("Vendor:      %s\n", mfg.Name)
	fmt.Printf("Resources:   %d (%d pins)\n", len(board.Resources()), len(assignments))
	fmt.Printf("Connectors:  %d\n", len(board.Connectors()))

	if verbose {
		fmt.Printf("\nConnectors:\n")
		for _, c := range board.Connectors() {
			kind := "positional"
			if c.IsKeyed() {
				kind = "keyed"
			}
			fmt.Printf("  %-10s %-10s %d pins\n", c.Name, kind, len(c.SubPins()))
		}
	}
	return nil
}
