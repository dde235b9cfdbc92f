package platform

import (
	"fmt"
	"slices"
	"strconv"
)

// Assignment binds one top-level port bit to a package pin together with its
// effective electrical attributes.
type Assignment struct {
	Port       string // "user_led_rgb0[2]", "serial0_tx"
	Pin        string // package pin, connector references resolved
	Resource   string
	Number     int
	Subsignal  string // empty for scalar/bus resources
	Bit        int    // -1 for single-pin ports
	IOStandard string
	Misc       []Misc
}

// Assignments flattens the whole resource table. See Select for a subset.
func (p *Platform) Assignments() ([]Assignment, error) {
	return p.assign(p.resources)
}

// Select returns the assignments of every resource instance with one of the
// given names, in table order. No names selects everything.
func (p *Platform) Select(names ...string) ([]Assignment, error) {
	if len(names) == 0 {
		return p.Assignments()
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if len(p.LookupAll(n)) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownResource, n)
		}
		want[n] = true
	}
	var picked []Resource
	for _, r := range p.resources {
		if want[r.Name] {
			picked = append(picked, r)
		}
	}
	return p.assign(picked)
}

func (p *Platform) assign(resources []Resource) ([]Assignment, error) {
	var out []Assignment
	for _, r := range resources {
		base := r.Name + strconv.Itoa(r.Number)
		if len(r.Subsignals) == 0 {
			as, err := p.expand(base, r.Pins, Assignment{
				Resource:   r.Name,
				Number:     r.Number,
				IOStandard: r.IOStandard,
				Misc:       r.Misc,
			})
			if err != nil {
				return nil, err
			}
			out = append(out, as...)
			continue
		}
		for _, s := range r.Subsignals {
			iostd := r.IOStandard
			if s.IOStandard != "" {
				iostd = s.IOStandard
			}
			as, err := p.expand(base+"_"+s.Name, s.Pins, Assignment{
				Resource:   r.Name,
				Number:     r.Number,
				Subsignal:  s.Name,
				IOStandard: iostd,
				Misc:       mergeMisc(r.Misc, s.Misc),
			})
			if err != nil {
				return nil, err
			}
			out = append(out, as...)
		}
	}
	return out, nil
}

func (p *Platform) expand(port string, pins []string, tmpl Assignment) ([]Assignment, error) {
	out := make([]Assignment, 0, len(pins))
	for i, id := range pins {
		pin, err := p.ResolvePin(id)
		if err != nil {
			return nil, fmt.Errorf("platform: %s: %w", port, err)
		}
		a := tmpl
		a.Pin = pin
		a.Misc = slices.Clone(tmpl.Misc)
		if len(pins) > 1 {
			a.Port = fmt.Sprintf("%s[%d]", port, i)
			a.Bit = i
		} else {
			a.Port = port
			a.Bit = -1
		}
		out = append(out, a)
	}
	return out, nil
}

// mergeMisc appends subsignal attributes to the inherited ones; a subsignal
// attribute replaces an inherited attribute with the same key.
func mergeMisc(inherited, own []Misc) []Misc {
	if len(own) == 0 {
		return inherited
	}
	if len(inherited) == 0 {
		return own
	}
	overridden := make(map[string]bool, len(own))
	for _, m := range own {
		k, _ := m.KeyValue()
		overridden[k] = true
	}
	out := make([]Misc, 0, len(inherited)+len(own))
	for _, m := range inherited {
		if k, _ := m.KeyValue(); !overridden[k] {
			out = append(out, m)
		}
	}
	return append(out, own...)
}
