package vvml

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/idcode"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

func newBoard(t *testing.T) *Platform {
	t.Helper()
	p, err := New("", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	p := newBoard(t)
	if p.Device != "LIFCL-40-8MG289C" || p.Toolchain != "radiant" {
		t.Errorf("Unexpected identity %s/%s", p.Device, p.Toolchain)
	}
	if p.DefaultClkName != "clk27" {
		t.Errorf("Unexpected default clock %s", p.DefaultClkName)
	}
	if p.DefaultClkPeriod < 37.037 || p.DefaultClkPeriod > 37.038 {
		t.Errorf("Unexpected default clock period %f ns", p.DefaultClkPeriod)
	}

	if p, err := New("LIFCL", "oxide"); err != nil || p.Toolchain != "oxide" {
		t.Errorf("oxide toolchain rejected: %v", err)
	}
	if _, err := New("LFE5U", ""); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("Expected ErrUnsupportedDevice, got %v", err)
	}
	if _, err := New("", "diamond"); !errors.Is(err, ErrUnsupportedToolchain) {
		t.Errorf("Expected ErrUnsupportedToolchain, got %v", err)
	}
}

func TestTables(t *testing.T) {
	p := newBoard(t)

	if n := len(p.Resources()); n != 26 {
		t.Errorf("Expected 26 resources, got %d", n)
	}
	if n := len(p.Connectors()); n != 5 {
		t.Errorf("Expected 5 connectors, got %d", n)
	}
	if n := len(p.LookupAll("user_dip_btn")); n != 4 {
		t.Errorf("Expected 4 DIP switches, got %d", n)
	}

	clk, err := p.Lookup("clk27", 0)
	if err != nil || clk.Pins[0] != "R11" || clk.IOStandard != "LVCMOS18H" {
		t.Errorf("Unexpected clk27: %+v (%v)", clk, err)
	}

	hr, err := p.Lookup("hyperram", 1)
	if err != nil {
		t.Fatalf("hyperram:1 missing: %v", err)
	}
	if dq, ok := hr.Subsignal("dq"); !ok || len(dq.Pins) != 8 || dq.Pins[0] != "P8" {
		t.Errorf("Unexpected hyperram:1 dq: %+v", dq)
	}
	if clk, _ := hr.Subsignal("clk"); clk.IOStandard != "LVDS" {
		t.Errorf("hyperram clock should be LVDS, got %s", clk.IOStandard)
	}

	ctrl, err := p.Lookup("cam_ctrl", 0)
	if err != nil || len(ctrl.Subsignals) != 2 || ctrl.IOStandard != "LVCMOS18" {
		t.Errorf("Unexpected cam_ctrl: %+v (%v)", ctrl, err)
	}

	asg, err := p.Assignments()
	if err != nil {
		t.Fatalf("Assignments failed: %v", err)
	}
	if len(asg) != 74 {
		t.Errorf("Expected 74 pin assignments, got %d", len(asg))
	}
}

func TestConnectors(t *testing.T) {
	p := newBoard(t)

	tests := map[string]string{
		"PMOD0:0":                 "D7",
		"PMOD0:7":                 "E4",
		"PMOD2:4":                 "K11",
		"PMOD3:7":                 "J10",
		"MIPI_DPHY:DPHY1_CKP":     "A4",
		"MIPI_DPHY:DPĤY1_DP1":     "A5",
		"MIPI_DPHY:I2C_DPHY1_SDA": "T16",
		"R11":                     "R11",
	}
	for id, want := range tests {
		got, err := p.ResolvePin(id)
		if err != nil || got != want {
			t.Errorf("ResolvePin(%q) = %q, %v; want %q", id, got, err, want)
		}
	}

	if _, err := p.ResolvePin("MIPI_DPHY:DPHY1_DP1"); !errors.Is(err, platform.ErrUnknownConnectorPin) {
		t.Errorf("ASCII spelling must not be guessed, got %v", err)
	}
	if _, err := p.ResolvePin("PMOD0:8"); !errors.Is(err, platform.ErrUnknownConnectorPin) {
		t.Errorf("Expected ErrUnknownConnectorPin, got %v", err)
	}
}

func TestTablesNotShared(t *testing.T) {
	p := newBoard(t)

	rs := p.Resources()
	rs[0].Pins[0] = "ZZ9"
	for _, c := range p.Connectors() {
		if c.Name == "MIPI_DPHY" {
			c.Keyed["DPHY1_CKP"] = "ZZ8"
		}
	}

	for _, b := range []*Platform{p, newBoard(t)} {
		if clk, _ := b.Lookup("clk27", 0); clk.Pins[0] != "R11" {
			t.Errorf("Expected clk27 on R11, got %v", clk.Pins)
		}
		if got, err := b.ResolvePin("MIPI_DPHY:DPHY1_CKP"); err != nil || got != "A4" {
			t.Errorf("Expected DPHY1_CKP on A4, got %q (%v)", got, err)
		}
	}
}

func TestExtension(t *testing.T) {
	p := newBoard(t)

	err := p.AddExtension(platform.Resource{
		Name: "pmod_uart",
		Subsignals: []platform.Subsignal{
			{Name: "tx", Pins: platform.Pins("PMOD1:1")},
			{Name: "rx", Pins: platform.Pins("PMOD1:2")},
		},
		IOStandard: "LVCMOS33",
	})
	if err != nil {
		t.Fatalf("AddExtension failed: %v", err)
	}

	asg, err := p.Select("pmod_uart")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(asg) != 2 || asg[0].Pin != "F6" || asg[1].Pin != "H3" {
		t.Errorf("Unexpected extension assignments: %+v", asg)
	}
}

func TestLintFlagsNonASCIIKey(t *testing.T) {
	p := newBoard(t)

	var found bool
	for _, f := range p.Lint() {
		if f.Kind == platform.FindingNonASCIIKey {
			found = true
			if !strings.Contains(f.Subject, "DPĤY1_DP1") {
				t.Errorf("Unexpected finding subject %q", f.Subject)
			}
		}
	}
	if !found {
		t.Error("Lint did not flag the non-ASCII MIPI_DPHY key")
	}
}

func TestIDCode(t *testing.T) {
	id := idcode.Parse(IDCode)
	d, ok := idcode.LookupDevice(id)
	if !ok || d.Name != "LIFCL-40" {
		t.Fatalf("IDCODE 0x%08X does not decode to LIFCL-40: %+v", IDCode, d)
	}

	xcf, _ := BuildDescriptor(lattice.ModeDirect, "top.bit")
	if !strings.Contains(strings.ToLower(xcf), "<idcode>0x010f1043</idcode>") {
		t.Error("Descriptor IDCODE does not match the board IDCODE")
	}
}

type recordingRunner struct {
	argv []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	r.argv = append([]string{name}, args...)
	return nil
}

func TestCreateProgrammer(t *testing.T) {
	p := newBoard(t)

	if _, err := p.CreateProgrammer("invalid", nil); !errors.Is(err, lattice.ErrInvalidProgrammerMode) {
		t.Errorf("Expected ErrInvalidProgrammerMode, got %v", err)
	}

	runner := &recordingRunner{}
	prog, err := p.CreateProgrammer(lattice.ModeFlash, &lattice.Options{Stdout: &bytes.Buffer{}, Runner: runner})
	if err != nil {
		t.Fatalf("CreateProgrammer failed: %v", err)
	}

	bit := filepath.Join(t.TempDir(), "top.bit")
	xcfPath, err := prog.LoadBitstream(context.Background(), bit)
	if err != nil {
		t.Fatalf("LoadBitstream failed: %v", err)
	}

	data, err := os.ReadFile(xcfPath)
	if err != nil {
		t.Fatalf("Descriptor not written: %v", err)
	}
	want, _ := BuildDescriptor(lattice.ModeFlash, bit)
	if string(data) != want {
		t.Error("Written descriptor differs from BuildDescriptor output")
	}
	if strings.Join(runner.argv, " ") != "pgrcmd -infile "+xcfPath {
		t.Errorf("Unexpected invocation %q", runner.argv)
	}
}
