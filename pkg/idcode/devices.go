package idcode

import "fmt"

// Device describes a known JTAG device.
type Device struct {
	Name      string
	Family    string
	Package   string // default package, empty if the part ships in several
	IRLength  int
	BSRLength int
}

type deviceKey struct {
	mfg  uint16
	part uint16
}

var devices = map[deviceKey]Device{
	{0x021, 0x10F0}: {Name: "LIFCL-17", Family: "CrossLink-NX", IRLength: 8},
	{0x021, 0x10F1}: {Name: "LIFCL-40", Family: "CrossLink-NX", IRLength: 8},
	{0x021, 0x1111}: {Name: "LFE5U-25F", Family: "ECP5", IRLength: 8},
	{0x021, 0x1112}: {Name: "LFE5U-45F", Family: "ECP5", IRLength: 8},
	{0x049, 0x3631}: {Name: "XC7A100T", Family: "Artix-7", IRLength: 6},
}

// LookupDevice finds the device an IDCODE identifies. The version field is
// ignored.
func LookupDevice(id IDCode) (Device, bool) {
	d, ok := devices[deviceKey{id.ManufacturerCode, id.PartNumber}]
	return d, ok
}

// Describe renders a one-line description of the device behind an IDCODE.
func Describe(id IDCode) string {
	if !id.HasIDCode {
		return fmt.Sprintf("0x%08X (BYPASS)", id.Raw)
	}
	if d, ok := LookupDevice(id); ok {
		return fmt.Sprintf("%s %s (0x%08X)", d.Family, d.Name, id.Raw)
	}
	return id.String()
}
