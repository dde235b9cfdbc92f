package platform

import (
	"bufio"
	"fmt"
	"io"
)

// WritePDC writes Lattice physical design constraints (the format shared by
// Radiant and nextpnr-nexus) for the named resources, or for the whole table
// when no names are given. The default clock, when selected, also gets a
// create_clock constraint.
func (p *Platform) WritePDC(w io.Writer, names ...string) error {
	assignments, err := p.Select(names...)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s physical constraints\n", p.Device)

	var clockPorts []string
	for _, a := range assignments {
		fmt.Fprintf(bw, "ldc_set_location -site {%s} [get_ports {%s}]\n", a.Pin, a.Port)
		if a.IOStandard != "" {
			fmt.Fprintf(bw, "ldc_set_port -iobuf {IO_TYPE=%s} [get_ports {%s}]\n", a.IOStandard, a.Port)
		}
		for _, m := range a.Misc {
			fmt.Fprintf(bw, "ldc_set_port -iobuf {%s} [get_ports {%s}]\n", m, a.Port)
		}
		if a.Resource == p.DefaultClkName && p.DefaultClkPeriod > 0 {
			clockPorts = append(clockPorts, a.Port)
		}
	}

	for _, port := range clockPorts {
		fmt.Fprintf(bw, "create_clock -name {%s} -period %.3f [get_ports {%s}]\n",
			port, p.DefaultClkPeriod, port)
	}

	return bw.Flush()
}
