package platform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

// ExportJSON exports the device, default clock and both tables.
func (p *Platform) ExportJSON() ([]byte, error) {
	output := struct {
		Device           string      `json:"device"`
		Toolchain        string      `json:"toolchain,omitempty"`
		DefaultClkName   string      `json:"default_clk_name,omitempty"`
		DefaultClkPeriod float64     `json:"default_clk_period_ns,omitempty"`
		Resources        []Resource  `json:"resources"`
		Connectors       []Connector `json:"connectors"`
	}{
		Device:           p.Device,
		Toolchain:        p.Toolchain,
		DefaultClkName:   p.DefaultClkName,
		DefaultClkPeriod: p.DefaultClkPeriod,
		Resources:        p.resources,
		Connectors:       p.connectors,
	}

	return json.MarshalIndent(output, "", "  ")
}

// ExportKiCad exports the pin assignments as a KiCad netlist with the FPGA as
// component U1 and one net per port bit. Connector pins that no resource uses
// are exported as "<connector>_<sub>" nets so headers can be wired in the
// schematic.
func (p *Platform) ExportKiCad() (string, error) {
	assignments, err := p.Assignments()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("(export (version D)\n")
	b.WriteString("  (design\n")
	fmt.Fprintf(&b, "    (source %s)\n", strconv.Quote(p.Device))
	b.WriteString("    (tool \"vvml\")\n")
	b.WriteString("  )\n")
	b.WriteString("  (components\n")
	fmt.Fprintf(&b, "    (comp (ref U1) (value %s))\n", strconv.Quote(p.Device))
	b.WriteString("  )\n")
	b.WriteString("  (nets\n")

	code := 1
	used := make(map[string]bool)
	for _, a := range assignments {
		used[a.Pin] = true
		fmt.Fprintf(&b, "    (net (code %d) (name %s)\n", code, strconv.Quote(a.Port))
		fmt.Fprintf(&b, "      (node (ref U1) (pin %s))\n", strconv.Quote(a.Pin))
		b.WriteString("    )\n")
		code++
	}
	for _, c := range p.connectors {
		for _, sub := range c.SubPins() {
			pin, _ := c.Pin(sub)
			if used[pin] || strings.Contains(pin, ":") {
				continue
			}
			used[pin] = true
			fmt.Fprintf(&b, "    (net (code %d) (name %s)\n", code, strconv.Quote(c.Name+"_"+sub))
			fmt.Fprintf(&b, "      (node (ref U1) (pin %s))\n", strconv.Quote(pin))
			b.WriteString("    )\n")
			code++
		}
	}
	b.WriteString("  )\n")
	b.WriteString(")\n")

	out := b.String()
	tree, err := sexp.ParseString(out)
	if err != nil {
		return "", fmt.Errorf("platform: kicad export is not a valid s-expression: %w", err)
	}
	// A port or connector name that breaks tokenization shows up as a net
	// count mismatch.
	if n := countLists(tree, "net"); n != code-1 {
		return "", fmt.Errorf("platform: kicad export has %d nets, wrote %d", n, code-1)
	}
	return out, nil
}

// countLists counts the lists headed by the given symbol at any depth.
func countLists(exprs []sexp.Sexp, head string) int {
	n := 0
	for _, e := range exprs {
		l, ok := e.(sexp.List)
		if !ok || len(l) == 0 {
			continue
		}
		if h, ok := l[0].(sexp.Symbol); ok && string(h) == head {
			n++
		}
		n += countLists(l, head)
	}
	return n
}
