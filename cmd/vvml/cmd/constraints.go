package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var constraintsOutput string

var constraintsCmd = &cobra.Command{
	Use:   "constraints [resource...]",
	Short: "Emit physical constraints (PDC)",
	Long: `Emit a Radiant / nextpnr-nexus PDC file with pin locations, I/O types and
the default clock constraint. Resource names restrict the output.

Examples:
  vvml constraints -o build/vvml.pdc
  vvml constraints clk27 user_led serial`,
	RunE: runConstraints,
}

func init() {
	rootCmd.AddCommand(constraintsCmd)

	constraintsCmd.Flags().StringVarP(&constraintsOutput, "output", "o", "",
		"write to a file instead of stdout")
}

func runConstraints(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(loadConfig())
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(constraintsOutput)
	if err != nil {
		return err
	}
	if err := board.WritePDC(w, args...); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	if verbose && constraintsOutput != "" {
		fmt.Printf("Wrote constraints to %s\n", constraintsOutput)
	}
	return nil
}
