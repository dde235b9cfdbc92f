package lattice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// DefaultTool is the Lattice Radiant programmer command line.
const DefaultTool = "pgrcmd"

// ErrNoTool is returned when the programmer command line is empty.
var ErrNoTool = errors.New("lattice: no programmer tool")

// CommandRunner runs an external command. The default runner uses os/exec;
// tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts the command and waits for it. Cancelling ctx kills the process.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// ToolError reports a failed programmer run.
type ToolError struct {
	Command  []string
	ExitCode int // -1 if the process never exited normally
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("lattice: %s failed", strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Options controls how the programmer is invoked.
type Options struct {
	Tool    string // command line, split with shell quoting rules
	XCFPath string // descriptor output path; derived from the bitstream if empty
	DryRun  bool   // write the descriptor but do not run the tool

	Stdout io.Writer
	Stderr io.Writer
	Runner CommandRunner
}

// DefaultOptions returns options that run pgrcmd from PATH.
func DefaultOptions() *Options {
	return &Options{
		Tool:   DefaultTool,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Runner: ExecRunner{},
	}
}

// Validate fills unset fields with defaults and checks the tool command line.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Tool) == "" {
		o.Tool = DefaultTool
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Stderr == nil {
		o.Stderr = io.Discard
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	_, err := SplitTool(o.Tool)
	return err
}

// SplitTool splits a programmer command line such as
// `wine "C:/lscc/radiant/2023.2/programmer/bin/nt64/pgrcmd.exe"`.
func SplitTool(tool string) ([]string, error) {
	argv, err := shlex.Split(tool)
	if err != nil {
		return nil, fmt.Errorf("lattice: tool %q: %w", tool, err)
	}
	if len(argv) == 0 {
		return nil, ErrNoTool
	}
	return argv, nil
}

// XCFPathFor derives the descriptor path from the bitstream path: a trailing
// .bit becomes .xcf, any other name gets .xcf appended.
func XCFPathFor(bitstreamFile string) string {
	if strings.EqualFold(filepath.Ext(bitstreamFile), ".bit") {
		return bitstreamFile[:len(bitstreamFile)-len(".bit")] + ".xcf"
	}
	return bitstreamFile + ".xcf"
}

// Programmer loads bitstreams through pgrcmd using one descriptor template.
type Programmer struct {
	tmpl *XCFTemplate
	opts Options
	argv []string // split opts.Tool
}

// NewProgrammer pairs a descriptor template with invocation options. A nil
// opts selects DefaultOptions.
func NewProgrammer(tmpl *XCFTemplate, opts *Options) (*Programmer, error) {
	if tmpl == nil {
		return nil, errors.New("lattice: nil descriptor template")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if err := o.Validate(); err != nil {
		return nil, err
	}
	argv, err := SplitTool(o.Tool)
	if err != nil {
		return nil, err
	}
	return &Programmer{tmpl: tmpl, opts: o, argv: argv}, nil
}

// Template returns the descriptor template.
func (p *Programmer) Template() *XCFTemplate {
	return p.tmpl
}

// Descriptor renders the XCF descriptor for a bitstream.
func (p *Programmer) Descriptor(bitstreamFile string) (string, error) {
	return p.tmpl.Render(bitstreamFile)
}

// Command returns the argv used to program with the given descriptor.
func (p *Programmer) Command(xcfPath string) []string {
	return append(slices.Clone(p.argv), "-infile", xcfPath)
}

// LoadBitstream writes the descriptor for bitstreamFile and runs the
// programmer on it. It returns the descriptor path.
func (p *Programmer) LoadBitstream(ctx context.Context, bitstreamFile string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	xcf, err := p.Descriptor(bitstreamFile)
	if err != nil {
		return "", err
	}

	xcfPath := p.opts.XCFPath
	if xcfPath == "" {
		xcfPath = XCFPathFor(bitstreamFile)
	}
	if err := os.WriteFile(xcfPath, []byte(xcf), 0644); err != nil {
		return "", fmt.Errorf("lattice: write descriptor: %w", err)
	}

	argv := p.Command(xcfPath)
	if p.opts.DryRun {
		fmt.Fprintln(p.opts.Stdout, strings.Join(argv, " "))
		return xcfPath, nil
	}

	var stderr bytes.Buffer
	err = p.opts.Runner.Run(ctx, argv[0], argv[1:], p.opts.Stdout, io.MultiWriter(p.opts.Stderr, &stderr))
	if err != nil {
		exitCode := -1
		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			exitCode = coded.ExitCode()
		}
		return xcfPath, &ToolError{
			Command:  argv,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return xcfPath, nil
}
