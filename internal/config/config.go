// Package config stores the per-user settings of the vvml tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards/vvml"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/lattice"
)

// Config stores persistent user settings. Command-line flags take precedence.
type Config struct {
	ProgrammerTool string `json:"programmer_tool"` // pgrcmd command line
	DefaultMode    string `json:"default_mode"`    // "direct" or "flash"
	Toolchain      string `json:"toolchain"`       // "radiant" or "oxide"
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		ProgrammerTool: lattice.DefaultTool,
		DefaultMode:    string(lattice.ModeDirect),
		Toolchain:      vvml.DefaultToolchain,
	}
}

// Validate fills empty fields with defaults and rejects unusable values.
func (c *Config) Validate() error {
	def := Default()
	if c.ProgrammerTool == "" {
		c.ProgrammerTool = def.ProgrammerTool
	}
	if c.DefaultMode == "" {
		c.DefaultMode = def.DefaultMode
	}
	if c.Toolchain == "" {
		c.Toolchain = def.Toolchain
	}

	if _, err := lattice.SplitTool(c.ProgrammerTool); err != nil {
		return fmt.Errorf("config: programmer_tool: %w", err)
	}
	if _, err := lattice.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("config: default_mode: %w", err)
	}
	if !slices.Contains(vvml.Toolchains, c.Toolchain) {
		return fmt.Errorf("config: toolchain: %w: %s", vvml.ErrUnsupportedToolchain, c.Toolchain)
	}
	return nil
}

// Path returns the config file location.
func Path() (string, error) {
	// Windows: %APPDATA%\OpenTraceBoards
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "OpenTraceBoards", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "opentraceboards", "config.json"), nil
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to the default location.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
