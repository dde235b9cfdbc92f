// Package vvml describes the Lattice CrossLink-NX VVML development board:
// its package pin table, its external connectors and the pgrcmd
// descriptors used to program it.
package vvml

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

const (
	DefaultClkName   = "clk27"
	DefaultClkPeriod = 1e9 / 27e6 // ns, 27 MHz oscillator

	DefaultDevice    = "LIFCL"
	DefaultToolchain = "radiant"

	// PartSuffix completes the device family name to the full part:
	// 40k LUTs, speed grade 8, 289-ball caBGA, commercial.
	PartSuffix = "-40-8MG289C"
	// PackageName is the BSDL pin map name of the 289-ball package.
	PackageName = "CABGA289"

	// IDCode is the JTAG IDCODE of the LIFCL-40.
	IDCode uint32 = 0x010F1043
)

var (
	ErrUnsupportedDevice    = errors.New("vvml: unsupported device")
	ErrUnsupportedToolchain = errors.New("vvml: unsupported toolchain")
)

// SupportedDevices lists the accepted device family names.
var SupportedDevices = []string{"LIFCL"}

// Toolchains lists the accepted toolchains.
var Toolchains = []string{"radiant", "oxide"}

// Platform is the VVML board.
type Platform struct {
	*platform.Platform
}

// New builds the board platform. An empty device or toolchain selects the
// default.
func New(device, toolchain string) (*Platform, error) {
	if device == "" {
		device = DefaultDevice
	}
	if toolchain == "" {
		toolchain = DefaultToolchain
	}
	if !slices.Contains(SupportedDevices, device) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDevice, device)
	}
	if !slices.Contains(Toolchains, toolchain) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedToolchain, toolchain)
	}

	p, err := platform.New(device+PartSuffix, IO(), Connectors(),
		platform.WithToolchain(toolchain),
		platform.WithDefaultClock(DefaultClkName, DefaultClkPeriod),
	)
	if err != nil {
		return nil, fmt.Errorf("vvml: %w", err)
	}
	return &Platform{Platform: p}, nil
}

// CreateProgrammer returns a programmer loading bitstreams with the
// descriptor for mode. A nil opts uses lattice.DefaultOptions.
func (p *Platform) CreateProgrammer(mode lattice.Mode, opts *lattice.Options) (*lattice.Programmer, error) {
	tmpl, err := Template(mode)
	if err != nil {
		return nil, err
	}
	return lattice.NewProgrammer(tmpl, opts)
}
