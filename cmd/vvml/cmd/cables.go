package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
	"github.com/spf13/cobra"
)

var cablesCmd = &cobra.Command{
	Use:   "cables",
	Short: "List USB programming cables",
	Long: `Scan the host for Lattice HW-USBN-2A and FTDI based programming cables and
print the pgrcmd port address (PortAdd) of each.`,
	Args: cobra.NoArgs,
	RunE: runCables,
}

func init() {
	rootCmd.AddCommand(cablesCmd)
}

func runCables(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cables, err := lattice.DiscoverCables(ctx)
	if err != nil {
		return fmt.Errorf("discover cables: %w", err)
	}

	if len(cables) == 0 {
		fmt.Println("No programming cables found.")
		return nil
	}

	fmt.Println("Detected programming cables:")
	for _, c := range cables {
		fmt.Printf("  - %s\n", c.Label())
	}
	return nil
}
