// Package lattice drives the Lattice pgrcmd programmer: XCF descriptor
// templates, tool invocation and USB cable discovery.
package lattice

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProgrammerMode is returned for an access mode other than direct or flash.
var ErrInvalidProgrammerMode = errors.New("lattice: invalid programmer mode")

// Mode selects how pgrcmd reaches the configuration memory.
type Mode string

const (
	// ModeDirect loads the bitstream into SRAM over JTAG. Lost on power cycle.
	ModeDirect Mode = "direct"
	// ModeFlash programs the external SPI flash through the FPGA (JTAG2SPI).
	ModeFlash Mode = "flash"
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeDirect, ModeFlash}
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	return m == ModeDirect || m == ModeFlash
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a mode name. Matching is exact: "Direct" is rejected.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w %q (want %s)", ErrInvalidProgrammerMode, s, modeList())
	}
	return m, nil
}

func modeList() string {
	var names []string
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, " or ")
}
