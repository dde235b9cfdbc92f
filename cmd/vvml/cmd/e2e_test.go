package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args and returns what it printed to
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	device = ""
	toolchain = ""
	showConnectors = false
	resolveIDs = nil
	descriptorMode = ""
	descriptorOutput = ""
	programMode = ""
	programTool = ""
	programXCF = ""
	programDryRun = false
	constraintsOutput = ""
	exportFormat = "json"
	exportOutput = ""
	checkBSDL = ""

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

// isolateHome points the config lookup at an empty home directory so the
// user's real config does not leak into the tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", "")
	return home
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	testdata := "../../../testdata"
	if _, err := os.Stat(testdata); os.IsNotExist(err) {
		testdata = "../../testdata"
	}
	return filepath.Join(testdata, name)
}

// TestCommandsE2E runs the read-only commands end-to-end
func TestCommandsE2E(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "info",
			args: []string{"info"},
			wantContain: []string{
				"LIFCL-40-8MG289C",
				"radiant",
				"clk27 (37.037 ns, 27.000 MHz)",
				"CrossLink-NX LIFCL-40 (0x010F1043)",
				"Lattice Semiconductor",
				"Resources:   26 (74 pins)",
				"Connectors:  5",
			},
		},
		{
			name:        "info oxide",
			args:        []string{"info", "--toolchain", "oxide"},
			wantContain: []string{"Toolchain:   oxide"},
		},
		{
			name:    "unsupported device",
			args:    []string{"info", "--device", "LFE5U"},
			wantErr: true,
		},
		{
			name: "pins",
			args: []string{"pins"},
			wantContain: []string{
				"clk270",
				"R11",
				"hyperram1_dq[7]",
				"SLEWRATE=FAST",
				"serial0_tx",
				"cam_reset0",
				"PULLMODE=UP",
			},
		},
		{
			name:        "pins selection",
			args:        []string{"pins", "spiflash4x"},
			wantContain: []string{"spiflash4x0_dq[3]", "B16"},
		},
		{
			name:    "pins unknown resource",
			args:    []string{"pins", "ethernet"},
			wantErr: true,
		},
		{
			name:        "pins connectors",
			args:        []string{"pins", "--connectors"},
			wantContain: []string{"MIPI_DPHY:", "DPĤY1_DP1", "PMOD3:"},
		},
		{
			name:        "resolve",
			args:        []string{"pins", "--resolve", "PMOD0:3", "--resolve", "MIPI_DPHY:DPHY1_CKP"},
			wantContain: []string{"PMOD0:3 -> E6", "MIPI_DPHY:DPHY1_CKP -> A4"},
		},
		{
			name:    "resolve unknown",
			args:    []string{"pins", "--resolve", "PMOD9:0"},
			wantErr: true,
		},
		{
			name: "descriptor direct",
			args: []string{"descriptor", "top.bit"},
			wantContain: []string{
				"<File>top.bit</File>",
				"<Operation>Fast Configuration</Operation>",
				"Static Random Access Memory (SRAM)",
			},
		},
		{
			name: "descriptor flash",
			args: []string{"descriptor", "--mode", "flash", "top.bit"},
			wantContain: []string{
				"<Comm>JTAG2SPI</Comm>",
				`file="top.bit"/>`,
			},
		},
		{
			name:    "descriptor invalid mode",
			args:    []string{"descriptor", "--mode", "invalid", "top.bit"},
			wantErr: true,
		},
		{
			name:    "descriptor missing bitstream",
			args:    []string{"descriptor"},
			wantErr: true,
		},
		{
			name: "constraints",
			args: []string{"constraints"},
			wantContain: []string{
				"# LIFCL-40-8MG289C physical constraints",
				"ldc_set_location -site {R11} [get_ports {clk270}]",
				"ldc_set_port -iobuf {IO_TYPE=LVDS} [get_ports {hyperram0_clk}]",
				"ldc_set_port -iobuf {PULLMODE=UP} [get_ports {cam_reset0}]",
				"create_clock -name {clk270} -period 37.037 [get_ports {clk270}]",
			},
		},
		{
			name:        "export json",
			args:        []string{"export"},
			wantContain: []string{`"device": "LIFCL-40-8MG289C"`, `"MIPI_DPHY"`},
		},
		{
			name:        "export kicad",
			args:        []string{"export", "--format", "kicad"},
			wantContain: []string{"(export (version D)", `(name "serial0_rx")`, `(name "PMOD3_0")`},
		},
		{
			name:    "export unknown format",
			args:    []string{"export", "--format", "csv"},
			wantErr: true,
		},
		{
			name: "check",
			args: []string{"check"},
			wantContain: []string{
				"Tables OK: 26 resources, 74 pins, 5 connectors",
				"[non-ascii-key] MIPI_DPHY:DPĤY1_DP1",
				"[shared-pin] N15",
			},
		},
		{
			name: "check bsdl",
			args: []string{"check", "--bsdl", testdataPath(t, "LIFCL_40_CABGA289.bsm")},
			wantContain: []string{
				"BSDL: LIFCL_40, package CABGA289 (115 pins)",
				"All board pins exist in the package.",
				"IDCODE matches: CrossLink-NX LIFCL-40 (0x010F1043)",
			},
		},
		{
			name:    "check missing bsdl",
			args:    []string{"check", "--bsdl", "does-not-exist.bsm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args...)

			// Check error expectation
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			// Check output contains expected strings
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestDescriptorOutputFile tests writing the descriptor to a file
func TestDescriptorOutputFile(t *testing.T) {
	isolateHome(t)
	out := filepath.Join(t.TempDir(), "top.xcf")

	if _, err := runCLI(t, "descriptor", "--mode", "flash", "-o", out, "build/top.bit"); err != nil {
		t.Fatalf("descriptor failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Descriptor not written: %v", err)
	}
	if n := strings.Count(string(data), "<File>build/top.bit</File>"); n != 3 {
		t.Errorf("Expected 3 <File> entries, got %d", n)
	}
}

// TestProgramDryRunE2E tests the program command without running pgrcmd
func TestProgramDryRunE2E(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	xcf := filepath.Join(dir, "out.xcf")

	output, err := runCLI(t, "program", "--dry-run", "--xcf", xcf, filepath.Join(dir, "top.bit"))
	if err != nil {
		t.Fatalf("program failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "pgrcmd -infile "+xcf) {
		t.Errorf("Unexpected dry-run output:\n%s", output)
	}

	data, err := os.ReadFile(xcf)
	if err != nil {
		t.Fatalf("Descriptor not written: %v", err)
	}
	if !strings.Contains(string(data), "<Comm>JTAG</Comm>") {
		t.Error("Expected direct mode descriptor by default")
	}
}

// TestProgramUsesConfig tests that the user config supplies the tool and mode
func TestProgramUsesConfig(t *testing.T) {
	home := isolateHome(t)

	cfgDir := filepath.Join(home, ".config", "opentraceboards")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := `{"programmer_tool": "wine \"C:/lscc/pgrcmd.exe\"", "default_mode": "flash"}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	bit := filepath.Join(dir, "top.bit")
	output, err := runCLI(t, "program", "--dry-run", bit)
	if err != nil {
		t.Fatalf("program failed: %v\nOutput: %s", err, output)
	}

	xcf := filepath.Join(dir, "top.xcf")
	if !strings.Contains(output, "wine C:/lscc/pgrcmd.exe -infile "+xcf) {
		t.Errorf("Config tool not used:\n%s", output)
	}
	data, err := os.ReadFile(xcf)
	if err != nil {
		t.Fatalf("Descriptor not written next to bitstream: %v", err)
	}
	if !strings.Contains(string(data), "<Comm>JTAG2SPI</Comm>") {
		t.Error("Config default mode not used")
	}

	// Flags override the config
	output, err = runCLI(t, "program", "--dry-run", "--mode", "direct", "--tool", "pgrcmd", bit)
	if err != nil {
		t.Fatalf("program failed: %v", err)
	}
	if !strings.Contains(output, "pgrcmd -infile "+xcf) || strings.Contains(output, "wine") {
		t.Errorf("--tool did not override config:\n%s", output)
	}
}

// TestProgramMissingBitstream tests that a real run requires the bitstream
func TestProgramMissingBitstream(t *testing.T) {
	isolateHome(t)
	if _, err := runCLI(t, "program", filepath.Join(t.TempDir(), "missing.bit")); err == nil {
		t.Error("Expected error for missing bitstream")
	}
}

// TestCheckMissingPins tests the BSDL cross-check with an incomplete pin map
func TestCheckMissingPins(t *testing.T) {
	isolateHome(t)
	bsdlFile := filepath.Join(t.TempDir(), "partial.bsm")
	partial := `entity LIFCL_40 is
	generic (PHYSICAL_PIN_MAP : string := "CABGA289");
	port (TCK : in bit; PR11 : inout bit);
	constant CABGA289 : PIN_MAP_STRING := "TCK : B11, PR11 : R11";
end LIFCL_40;
`
	if err := os.WriteFile(bsdlFile, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "check", "--bsdl", bsdlFile)
	if err == nil {
		t.Fatal("Expected package pin check to fail")
	}
	if !strings.Contains(err.Error(), "N14 (clk240)") {
		t.Errorf("Missing pin not reported: %v", err)
	}
}
