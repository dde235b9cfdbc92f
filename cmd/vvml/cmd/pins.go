package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/spf13/cobra"
)

var (
	showConnectors bool
	resolveIDs     []string
)

var pinsCmd = &cobra.Command{
	Use:   "pins [resource...]",
	Short: "List pin assignments",
	Long: `List the package pin of every port bit with its I/O standard and extra
attributes. Resource names restrict the listing.

Examples:
  vvml pins
  vvml pins hyperram serial
  vvml pins --connectors
  vvml pins --resolve PMOD0:3 --resolve MIPI_DPHY:DPHY1_CKP`,
	RunE: runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)

	pinsCmd.Flags().BoolVarP(&showConnectors, "connectors", "c", false,
		"also list connector pinouts")
	pinsCmd.Flags().StringArrayVarP(&resolveIDs, "resolve", "r", nil,
		"resolve a connector reference (CONN:PIN) to a package pin")
}

func runPins(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(loadConfig())
	if err != nil {
		return err
	}

	if len(resolveIDs) > 0 {
		for _, id := range resolveIDs {
			pin, err := board.ResolvePin(id)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", id, pin)
		}
		return nil
	}

	assignments, err := board.Select(args...)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %-5s %-10s %s\n", "PORT", "PIN", "IOSTANDARD", "ATTRIBUTES")
	for _, a := range assignments {
		fmt.Printf("%-24s %-5s %-10s %s\n", a.Port, a.Pin, a.IOStandard, joinMisc(a.Misc))
	}

	if showConnectors {
		fmt.Println()
		for _, c := range board.Connectors() {
			fmt.Printf("%s:\n", c.Name)
			for _, sub := range c.SubPins() {
				pin, _ := c.Pin(sub)
				fmt.Printf("  %-16s %s\n", sub, pin)
			}
		}
	}
	return nil
}

func joinMisc(misc []platform.Misc) string {
	parts := make([]string, len(misc))
	for i, m := range misc {
		parts[i] = string(m)
	}
	return strings.Join(parts, " ")
}
