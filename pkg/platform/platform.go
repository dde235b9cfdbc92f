// Package platform models an FPGA board: the device, its resource (pin) table
// and its connectors, and derives constraints and exports from them.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidResource     = errors.New("platform: invalid resource")
	ErrDuplicateResource   = errors.New("platform: duplicate resource")
	ErrDuplicateSubsignal  = errors.New("platform: duplicate subsignal")
	ErrUnknownResource     = errors.New("platform: unknown resource")
	ErrInvalidConnector    = errors.New("platform: invalid connector")
	ErrDuplicateConnector  = errors.New("platform: duplicate connector")
	ErrUnknownConnector    = errors.New("platform: unknown connector")
	ErrUnknownConnectorPin = errors.New("platform: unknown connector pin")
)

// maxConnectorDepth bounds connector-to-connector indirection.
const maxConnectorDepth = 8

// Platform is the generic description of a board: the target device, the
// resource (pin) table and the connector table. Board packages compose a
// Platform from their static tables with New.
type Platform struct {
	Device           string  // full part name, e.g. "LIFCL-40-8MG289C"
	Toolchain        string  // e.g. "radiant"
	DefaultClkName   string  // resource name of the default clock
	DefaultClkPeriod float64 // nanoseconds

	resources  []Resource
	connectors []Connector
	byKey      map[resourceKey]int
	byConn     map[string]int
}

type resourceKey struct {
	name   string
	number int
}

// Option customizes a Platform during New.
type Option func(*Platform)

// WithToolchain sets the toolchain name.
func WithToolchain(name string) Option {
	return func(p *Platform) {
		p.Toolchain = name
	}
}

// WithDefaultClock sets the default clock resource and its period in
// nanoseconds.
func WithDefaultClock(name string, period float64) Option {
	return func(p *Platform) {
		p.DefaultClkName = name
		p.DefaultClkPeriod = period
	}
}

// New validates the tables and returns a Platform. Resource (name, number)
// pairs and connector names must be unique.
func New(device string, io []Resource, connectors []Connector, opts ...Option) (*Platform, error) {
	if device == "" {
		return nil, fmt.Errorf("platform: empty device name")
	}
	p := &Platform{
		Device: device,
		byKey:  make(map[resourceKey]int, len(io)),
		byConn: make(map[string]int, len(connectors)),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, c := range connectors {
		if err := c.validate(); err != nil {
			return nil, err
		}
		if _, dup := p.byConn[c.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateConnector, c.Name)
		}
		p.byConn[c.Name] = len(p.connectors)
		p.connectors = append(p.connectors, c.Clone())
	}

	if err := p.add(io); err != nil {
		return nil, err
	}

	if p.DefaultClkName != "" {
		if len(p.LookupAll(p.DefaultClkName)) == 0 {
			return nil, fmt.Errorf("%w: default clock %s", ErrUnknownResource, p.DefaultClkName)
		}
	}
	return p, nil
}

// AddExtension registers additional resources, typically peripherals plugged
// into a connector whose pins are given as connector references
// ("PMOD0:0").
func (p *Platform) AddExtension(io ...Resource) error {
	return p.add(io)
}

func (p *Platform) add(io []Resource) error {
	batch := make(map[resourceKey]bool, len(io))
	for _, r := range io {
		if err := r.validate(); err != nil {
			return err
		}
		key := resourceKey{name: r.Name, number: r.Number}
		if _, dup := p.byKey[key]; dup || batch[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateResource, r)
		}
		batch[key] = true
		if err := p.resolvable(r); err != nil {
			return err
		}
	}
	for _, r := range io {
		p.byKey[resourceKey{name: r.Name, number: r.Number}] = len(p.resources)
		p.resources = append(p.resources, r.Clone())
	}
	return nil
}

func (p *Platform) resolvable(r Resource) error {
	check := func(pins []string) error {
		for _, pin := range pins {
			if _, err := p.ResolvePin(pin); err != nil {
				return fmt.Errorf("platform: resource %s: %w", r, err)
			}
		}
		return nil
	}
	if err := check(r.Pins); err != nil {
		return err
	}
	for _, s := range r.Subsignals {
		if err := check(s.Pins); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the resource with the given name and instance number.
func (p *Platform) Lookup(name string, number int) (Resource, error) {
	idx, ok := p.byKey[resourceKey{name: name, number: number}]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s:%d", ErrUnknownResource, name, number)
	}
	return p.resources[idx].Clone(), nil
}

// LookupAll returns every instance of a resource name in table order.
func (p *Platform) LookupAll(name string) []Resource {
	var out []Resource
	for _, r := range p.resources {
		if r.Name == name {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Resources returns a deep copy of the resource table in declaration order.
// The tables are immutable once validated.
func (p *Platform) Resources() []Resource {
	out := make([]Resource, len(p.resources))
	for i, r := range p.resources {
		out[i] = r.Clone()
	}
	return out
}

// Connectors returns a deep copy of the connector table in declaration order.
func (p *Platform) Connectors() []Connector {
	out := make([]Connector, len(p.connectors))
	for i, c := range p.connectors {
		out[i] = c.Clone()
	}
	return out
}

// Connector returns the named connector.
func (p *Platform) Connector(name string) (Connector, bool) {
	idx, ok := p.byConn[name]
	if !ok {
		return Connector{}, false
	}
	return p.connectors[idx].Clone(), true
}

// ResolvePin maps a pin locator to a package pin. Connector references
// ("PMOD2:5", "MIPI_DPHY:DPHY1_CKN") are followed until a plain package pin
// is reached; plain pins are returned unchanged.
func (p *Platform) ResolvePin(id string) (string, error) {
	for depth := 0; strings.Contains(id, ":"); depth++ {
		if depth >= maxConnectorDepth {
			return "", fmt.Errorf("platform: connector reference %q nests too deep", id)
		}
		name, sub, _ := strings.Cut(id, ":")
		idx, ok := p.byConn[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownConnector, name)
		}
		conn := p.connectors[idx]
		pin, ok := conn.Pin(sub)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownConnectorPin, id)
		}
		id = pin
	}
	return id, nil
}
