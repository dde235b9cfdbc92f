package platform

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
)

// Connector describes a physical header exposing package pins to off-board
// peripherals. Positional connectors list their pins in order and are
// addressed by 0-based index ("PMOD0:3"); keyed connectors map a descriptive
// name to a pin ("MIPI_DPHY:DPHY1_CKP").
type Connector struct {
	Name  string            `json:"name"`
	Pins  []string          `json:"pins,omitempty"`
	Keyed map[string]string `json:"keyed,omitempty"`
}

// IsKeyed reports whether the connector is addressed by name.
func (c Connector) IsKeyed() bool {
	return c.Keyed != nil
}

// Clone returns a deep copy of the connector.
func (c Connector) Clone() Connector {
	c.Pins = slices.Clone(c.Pins)
	c.Keyed = maps.Clone(c.Keyed)
	return c
}

// Pin returns the package pin behind a connector sub-pin.
func (c Connector) Pin(sub string) (string, bool) {
	if c.IsKeyed() {
		pin, ok := c.Keyed[sub]
		return pin, ok
	}
	idx, err := strconv.Atoi(sub)
	if err != nil || idx < 0 || idx >= len(c.Pins) {
		return "", false
	}
	return c.Pins[idx], true
}

// SubPins returns the connector's sub-pin names: indices for positional
// connectors, sorted keys for keyed ones.
func (c Connector) SubPins() []string {
	if !c.IsKeyed() {
		names := make([]string, len(c.Pins))
		for i := range c.Pins {
			names[i] = strconv.Itoa(i)
		}
		return names
	}
	names := make([]string, 0, len(c.Keyed))
	for name := range c.Keyed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Connector) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidConnector)
	}
	if c.IsKeyed() && len(c.Pins) > 0 {
		return fmt.Errorf("%w: %s is both positional and keyed", ErrInvalidConnector, c.Name)
	}
	if len(c.Pins) == 0 && len(c.Keyed) == 0 {
		return fmt.Errorf("%w: %s has no pins", ErrInvalidConnector, c.Name)
	}
	return nil
}
