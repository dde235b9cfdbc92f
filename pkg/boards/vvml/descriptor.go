package vvml

import (
	_ "embed"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
)

// SRAM configuration over JTAG.
//
//go:embed xcf_direct.xcf
var xcfDirect string

// SPI flash programming through the FPGA (JTAG2SPI).
//
//go:embed xcf_flash.xcf
var xcfFlash string

var templates = map[lattice.Mode]*lattice.XCFTemplate{
	lattice.ModeDirect: mustParse("xcf_direct.xcf", xcfDirect),
	lattice.ModeFlash:  mustParse("xcf_flash.xcf", xcfFlash),
}

func mustParse(name, text string) *lattice.XCFTemplate {
	tmpl, err := lattice.ParseXCFTemplate(name, text)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Template returns the descriptor template for mode.
func Template(mode lattice.Mode) (*lattice.XCFTemplate, error) {
	tmpl, ok := templates[mode]
	if !ok {
		return nil, fmt.Errorf("vvml: %w %q", lattice.ErrInvalidProgrammerMode, string(mode))
	}
	return tmpl, nil
}

// BuildDescriptor renders the pgrcmd descriptor for mode with every
// placeholder replaced by bitstreamFile. The path is not checked and is
// inserted without escaping.
func BuildDescriptor(mode lattice.Mode, bitstreamFile string) (string, error) {
	tmpl, err := Template(mode)
	if err != nil {
		return "", err
	}
	return tmpl.Render(bitstreamFile)
}
