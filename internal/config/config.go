// Package config loads beacon.toml, the project-level settings file for the
// analysis overlay. Discovery walks upward from the start directory; a
// missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decoded beacon.toml.
type Config struct {
	Passes PassesConfig `toml:"passes"`
	Output OutputConfig `toml:"output"`
}

// PassesConfig toggles the individual analysis passes.
type PassesConfig struct {
	Conditions bool `toml:"conditions"`
	InitOrder  bool `toml:"init_order"`
}

// OutputConfig controls diagnostic rendering.
type OutputConfig struct {
	// Format selects the writer: "pretty" or "json".
	Format string `toml:"format"`
	// MaxDiagnostics caps the total reported count; 0 means the default.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Hints suppresses hint-severity diagnostics when false.
	Hints bool `toml:"hints"`
}

// Manifest pairs a decoded config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no beacon.toml exists.
func Default() Config {
	return Config{
		Passes: PassesConfig{Conditions: true, InitOrder: true},
		Output: OutputConfig{Format: "pretty", MaxDiagnostics: 256, Hints: true},
	}
}

// Find walks from startDir toward the filesystem root looking for
// beacon.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "beacon.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and decodes the manifest. The second result reports whether
// a file was found; without one the caller should fall back to Default.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Decode(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Decode parses a beacon.toml at an explicit path. Sections that are absent
// keep their default values; defined keys must decode cleanly.
func Decode(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, meta, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeBytes parses in-memory TOML content, for tests and stdin use.
func DecodeBytes(path string, data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, meta, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(path string, meta toml.MetaData, cfg Config) error {
	if meta.IsDefined("output", "format") {
		switch cfg.Output.Format {
		case "pretty", "json":
		default:
			return fmt.Errorf("%s: [output].format must be \"pretty\" or \"json\", got %q", path, cfg.Output.Format)
		}
	}
	if cfg.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: [output].max_diagnostics must not be negative", path)
	}
	return nil
}
