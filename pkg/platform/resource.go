package platform

import (
	"fmt"
	"slices"
	"strings"
)

// Resource declares one board-level signal: a pin (or bus of pins) or a group
// of named subsignals sharing a name and instance number.
//
// Example: {Name: "user_led", Number: 2, Pins: Pins("H5"), IOStandard: "LVCMOS33"}
type Resource struct {
	Name       string      `json:"name"`
	Number     int         `json:"number"`
	Pins       []string    `json:"pins,omitempty"`
	Subsignals []Subsignal `json:"subsignals,omitempty"`
	IOStandard string      `json:"io_standard,omitempty"`
	Misc       []Misc      `json:"misc,omitempty"`
}

// Subsignal is a named member of a composite resource (e.g. "tx" of "serial").
// IOStandard and Misc override or extend the values of the parent resource.
type Subsignal struct {
	Name       string   `json:"name"`
	Pins       []string `json:"pins"`
	IOStandard string   `json:"io_standard,omitempty"`
	Misc       []Misc   `json:"misc,omitempty"`
}

// Misc is a vendor attribute applied to a port, written as KEY=VALUE
// (e.g. "SLEWRATE=FAST", "PULLMODE=UP").
type Misc string

// KeyValue splits the attribute into its key and value. Attributes without
// a '=' are returned as a bare key.
func (m Misc) KeyValue() (key, value string) {
	k, v, ok := strings.Cut(string(m), "=")
	if !ok {
		return strings.TrimSpace(string(m)), ""
	}
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

// Pins splits a space separated list of pin locators ("J7 J6 J2").
func Pins(ids string) []string {
	return strings.Fields(ids)
}

// Subsignal returns the named subsignal.
func (r Resource) Subsignal(name string) (Subsignal, bool) {
	for _, s := range r.Subsignals {
		if s.Name == name {
			return s, true
		}
	}
	return Subsignal{}, false
}

// Clone returns a deep copy of the resource.
func (r Resource) Clone() Resource {
	r.Pins = slices.Clone(r.Pins)
	r.Misc = slices.Clone(r.Misc)
	if r.Subsignals != nil {
		subs := make([]Subsignal, len(r.Subsignals))
		for i, s := range r.Subsignals {
			s.Pins = slices.Clone(s.Pins)
			s.Misc = slices.Clone(s.Misc)
			subs[i] = s
		}
		r.Subsignals = subs
	}
	return r
}

// String returns "name:number".
func (r Resource) String() string {
	return fmt.Sprintf("%s:%d", r.Name, r.Number)
}

func (r Resource) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidResource)
	}
	if r.Number < 0 {
		return fmt.Errorf("%w: %s has negative number", ErrInvalidResource, r)
	}
	hasPins := len(r.Pins) > 0
	hasSubs := len(r.Subsignals) > 0
	switch {
	case hasPins && hasSubs:
		return fmt.Errorf("%w: %s has both pins and subsignals", ErrInvalidResource, r)
	case !hasPins && !hasSubs:
		return fmt.Errorf("%w: %s has no pins", ErrInvalidResource, r)
	}

	seen := make(map[string]bool, len(r.Subsignals))
	for _, s := range r.Subsignals {
		if s.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed subsignal", ErrInvalidResource, r)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateSubsignal, r, s.Name)
		}
		seen[s.Name] = true
		if len(s.Pins) == 0 {
			return fmt.Errorf("%w: %s.%s has no pins", ErrInvalidResource, r, s.Name)
		}
	}
	return nil
}
