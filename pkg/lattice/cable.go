package lattice

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// CableKind identifies the USB bridge of a programming cable.
type CableKind string

const (
	CableKindUSB2 CableKind = "USB2" // Lattice HW-USBN-2A/2B (Cypress EZ-USB)
	CableKindFTDI CableKind = "FTDI" // FT2232H/FT4232H, including on-board programmers
)

// CableInfo describes a detected programming cable.
type CableInfo struct {
	Kind        CableKind
	Description string
	VendorID    uint16
	ProductID   uint16
	Bus         int
	Address     int
	// PortAdd is the value pgrcmd expects in the descriptor <PortAdd> field.
	PortAdd string
}

// Label returns a one-line description of the cable.
func (c CableInfo) Label() string {
	return fmt.Sprintf("%s [%s] %04X:%04X bus %d addr %d",
		c.Description, c.PortAdd, c.VendorID, c.ProductID, c.Bus, c.Address)
}

type knownCable struct {
	Kind        CableKind
	VendorID    uint16
	ProductID   uint16
	Description string
}

var knownCables = []knownCable{
	{Kind: CableKindUSB2, VendorID: 0x1134, ProductID: 0x8001, Description: "Lattice HW-USBN-2A"},
	{Kind: CableKindFTDI, VendorID: 0x0403, ProductID: 0x6010, Description: "FTDI FT2232H"},
	{Kind: CableKindFTDI, VendorID: 0x0403, ProductID: 0x6011, Description: "FTDI FT4232H"},
}

func classifyCable(vid, pid uint16) (knownCable, bool) {
	for _, known := range knownCables {
		if vid == known.VendorID && pid == known.ProductID {
			return known, true
		}
	}
	return knownCable{}, false
}

// portAddPrefix maps a cable kind to the pgrcmd port name prefix.
var portAddPrefix = map[CableKind]string{
	CableKindUSB2: "EZUSB",
	CableKindFTDI: "FTUSB",
}

// assignPorts numbers cables of each kind in enumeration order, the same
// order pgrcmd uses.
func assignPorts(cables []CableInfo) {
	next := make(map[CableKind]int)
	for i := range cables {
		kind := cables[i].Kind
		cables[i].PortAdd = fmt.Sprintf("%s-%d", portAddPrefix[kind], next[kind])
		next[kind]++
	}
}

// DiscoverCables enumerates connected USB programming cables. Devices are
// only inspected, never opened. A permission error on an unrelated device is
// not fatal.
func DiscoverCables(ctx context.Context) ([]CableInfo, error) {
	var cables []CableInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if known, ok := classifyCable(uint16(desc.Vendor), uint16(desc.Product)); ok {
			cables = append(cables, CableInfo{
				Kind:        known.Kind,
				Description: known.Description,
				VendorID:    known.VendorID,
				ProductID:   known.ProductID,
				Bus:         desc.Bus,
				Address:     desc.Address,
			})
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return cables, fmt.Errorf("lattice: enumerate USB devices: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return cables, err
	}

	assignPorts(cables)
	return cables, nil
}
