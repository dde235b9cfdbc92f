package bsdl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPinMap is returned when a BSDL entity has no usable PIN_MAP_STRING.
var ErrNoPinMap = errors.New("bsdl: no pin map")

// PinMap maps logical ports to the physical pins of one device package.
type PinMap struct {
	Package string

	ports map[string][]string // port → pins
	pins  map[string]string   // pin → port
	order []string            // ports in declaration order
}

// PinMap extracts the pin map selected by the PHYSICAL_PIN_MAP generic. If the
// generic is absent, the first PIN_MAP_STRING constant is used.
func (e *Entity) PinMap() (*PinMap, error) {
	name := ""
	if g := e.GenericParam("PHYSICAL_PIN_MAP"); g != nil && g.Default != nil {
		name = g.Default.Text()
	}
	return e.PinMapFor(name)
}

// PinMapFor extracts the PIN_MAP_STRING constant for the named package. An
// empty name selects the first pin map.
func (e *Entity) PinMapFor(pkg string) (*PinMap, error) {
	for _, c := range e.Constants() {
		if !strings.EqualFold(c.Type, "PIN_MAP_STRING") {
			continue
		}
		if pkg != "" && !strings.EqualFold(c.Name, pkg) {
			continue
		}
		pm, err := parsePinMapString(c.Value.Text())
		if err != nil {
			return nil, fmt.Errorf("bsdl: pin map %s: %w", c.Name, err)
		}
		pm.Package = c.Name
		return pm, nil
	}
	if pkg != "" {
		return nil, fmt.Errorf("%w: package %s", ErrNoPinMap, pkg)
	}
	return nil, ErrNoPinMap
}

// parsePinMapString parses "PORT : PIN, BUS : (P1, P2), ...".
func parsePinMapString(s string) (*PinMap, error) {
	pm := &PinMap{
		ports: make(map[string][]string),
		pins:  make(map[string]string),
	}
	for _, entry := range splitTopLevel(s) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		port, pins, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		port = strings.TrimSpace(port)
		pins = strings.TrimSpace(pins)
		pins = strings.TrimSuffix(strings.TrimPrefix(pins, "("), ")")

		var list []string
		for _, pin := range strings.Split(pins, ",") {
			if pin = strings.TrimSpace(pin); pin != "" {
				list = append(list, pin)
			}
		}
		if port == "" || len(list) == 0 {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		if _, dup := pm.ports[port]; !dup {
			pm.order = append(pm.order, port)
		}
		pm.ports[port] = append(pm.ports[port], list...)
		for _, pin := range list {
			pm.pins[pin] = port
		}
	}
	return pm, nil
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// HasPin reports whether the package has the physical pin.
func (m *PinMap) HasPin(pin string) bool {
	_, ok := m.pins[pin]
	return ok
}

// Port returns the logical port bonded to a physical pin.
func (m *PinMap) Port(pin string) (string, bool) {
	port, ok := m.pins[pin]
	return port, ok
}

// Pins returns the physical pins of a logical port.
func (m *PinMap) Pins(port string) []string {
	return m.ports[port]
}

// Ports returns the logical ports in declaration order.
func (m *PinMap) Ports() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of physical pins.
func (m *PinMap) Len() int {
	return len(m.pins)
}
