package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pin and connector tables",
	Long: `Export the board tables as JSON or as a KiCad netlist S-expression.

Examples:
  vvml export --format json
  vvml export --format kicad -o vvml.net`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json",
		"output format: json or kicad")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(loadConfig())
	if err != nil {
		return err
	}

	var data string
	switch exportFormat {
	case "json":
		b, err := board.ExportJSON()
		if err != nil {
			return err
		}
		data = string(b) + "\n"
	case "kicad":
		data, err = board.ExportKiCad()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (want json or kicad)", exportFormat)
	}

	w, closeOut, err := openOutput(exportOutput)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, data); err != nil {
		closeOut()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return closeOut()
}
