package platform

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// ErrUnknownPackagePin is reported by CheckPackage for pins missing from the
// device package.
var ErrUnknownPackagePin = errors.New("platform: pin not in package")

// FindingKind classifies lint findings.
type FindingKind string

const (
	FindingNonASCIIKey  FindingKind = "non-ascii-key"
	FindingSharedPin    FindingKind = "shared-pin"
	FindingNoIOStandard FindingKind = "no-io-standard"
)

// Finding is a non-fatal remark about the tables. Findings never block
// platform construction; they point at entries that should be reviewed
// against the board documentation.
type Finding struct {
	Kind    FindingKind
	Subject string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Kind, f.Subject, f.Message)
}

// Lint inspects the tables for entries that are legal but suspicious.
func (p *Platform) Lint() []Finding {
	var findings []Finding

	for _, c := range p.connectors {
		for _, key := range c.SubPins() {
			if !isASCII(key) {
				findings = append(findings, Finding{
					Kind:    FindingNonASCIIKey,
					Subject: c.Name + ":" + key,
					Message: fmt.Sprintf("key contains non-ASCII characters (pin %s kept as declared)", c.Keyed[key]),
				})
			}
		}
	}

	assignments, err := p.Assignments()
	if err != nil {
		// New and AddExtension only accept resolvable tables.
		return findings
	}

	users := make(map[string][]string)
	var order []string
	noStd := make(map[string]bool)
	for _, a := range assignments {
		owner := fmt.Sprintf("%s:%d", a.Resource, a.Number)
		if _, ok := users[a.Pin]; !ok {
			order = append(order, a.Pin)
		}
		if !slices.Contains(users[a.Pin], owner) {
			users[a.Pin] = append(users[a.Pin], owner)
		}
		if a.IOStandard == "" && !noStd[owner] {
			noStd[owner] = true
			findings = append(findings, Finding{
				Kind:    FindingNoIOStandard,
				Subject: owner,
				Message: "no I/O standard, toolchain default applies",
			})
		}
	}
	for _, pin := range order {
		if len(users[pin]) > 1 {
			findings = append(findings, Finding{
				Kind:    FindingSharedPin,
				Subject: pin,
				Message: "shared by " + strings.Join(users[pin], ", "),
			})
		}
	}
	return findings
}

// PackagePins is the set of physical pins of a device package, e.g. taken
// from a BSDL pin map.
type PackagePins interface {
	HasPin(pin string) bool
}

// CheckPackage verifies that every resource and connector pin exists in the
// device package. All missing pins are reported, joined into one error.
func (p *Platform) CheckPackage(pkg PackagePins) error {
	var errs []error
	reported := make(map[string]bool)
	report := func(pin, where string) {
		if pkg.HasPin(pin) || reported[pin] {
			return
		}
		reported[pin] = true
		errs = append(errs, fmt.Errorf("%w: %s (%s)", ErrUnknownPackagePin, pin, where))
	}

	assignments, err := p.Assignments()
	if err != nil {
		return err
	}
	for _, a := range assignments {
		report(a.Pin, a.Port)
	}
	for _, c := range p.connectors {
		for _, sub := range c.SubPins() {
			pin, _ := c.Pin(sub)
			if !strings.Contains(pin, ":") {
				report(pin, c.Name+":"+sub)
			}
		}
	}

	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return errors.Join(errs...)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
