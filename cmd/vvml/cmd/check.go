package cmd

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards/vvml"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/bsdl"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/idcode"
	"github.com/spf13/cobra"
)

var checkBSDL string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the board tables",
	Long: `Validate the pin and connector tables and print lint findings (shared pins,
missing I/O standards, suspicious connector keys). With --bsdl, every
assigned pin is checked against the package pin map of a BSDL file and the
BSDL IDCODE is compared with the board device.

Examples:
  vvml check
  vvml check --bsdl LIFCL_40_CABGA289.bsm`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkBSDL, "bsdl", "b", "",
		"BSDL file of the device to cross-check against")
}

func runCheck(cmd *cobra.Command, args []string) error {
	board, err := loadBoard(loadConfig())
	if err != nil {
		return err
	}

	assignments, err := board.Assignments()
	if err != nil {
		return err
	}
	fmt.Printf("Tables OK: %d resources, %d pins, %d connectors\n",
		len(board.Resources()), len(assignments), len(board.Connectors()))

	findings := board.Lint()
	if len(findings) == 0 {
		fmt.Println("No findings.")
	} else {
		fmt.Printf("%d finding(s):\n", len(findings))
		for _, f := range findings {
			fmt.Printf("  %s\n", f)
		}
	}

	if checkBSDL == "" {
		return nil
	}
	return checkAgainstBSDL(board, checkBSDL)
}

func checkAgainstBSDL(board *vvml.Platform, path string) error {
	parser, err := bsdl.NewParser()
	if err != nil {
		return err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	entity := file.Entity

	pm, err := entity.PinMapFor(vvml.PackageName)
	if errors.Is(err, bsdl.ErrNoPinMap) {
		pm, err = entity.PinMap()
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nBSDL: %s, package %s (%d pins)\n", entity.Name, pm.Package, pm.Len())

	if err := board.CheckPackage(pm); err != nil {
		return fmt.Errorf("package pin check failed:\n%w", err)
	}
	fmt.Println("All board pins exist in the package.")

	value, mask, err := entity.IDCode()
	if errors.Is(err, bsdl.ErrNoIDCode) {
		fmt.Println("BSDL has no IDCODE, skipping device check.")
		return nil
	}
	if err != nil {
		return err
	}
	if value&mask != vvml.IDCode&mask {
		return fmt.Errorf("IDCODE mismatch: BSDL %s, board %s",
			idcode.Describe(idcode.Parse(value)), idcode.Describe(idcode.Parse(vvml.IDCode)))
	}
	fmt.Printf("IDCODE matches: %s\n", idcode.Describe(idcode.Parse(vvml.IDCode)))
	return nil
}
