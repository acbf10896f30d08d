// Package config resolves platymap settings from defaults, a platymap.toml
// file and PLATYMAP_* environment variables, in that order of precedence.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/roach88/platymap/internal/script"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "platymap.toml"

// Config holds resolved settings.
type Config struct {
	// TextFormat is the script format written by decompile.
	TextFormat string `toml:"text_format" env:"PLATYMAP_TEXT_FORMAT"`
	// InputFormat forces the script format read by compile and validate.
	// Empty means pick by file extension, falling back to TextFormat.
	InputFormat string `toml:"input_format" env:"PLATYMAP_INPUT_FORMAT"`
	// DBPath enables the conversion history when set.
	DBPath string `toml:"db" env:"PLATYMAP_DB"`
	// TablePath replaces the builtin opcode table with a CUE table.
	TablePath string `toml:"table" env:"PLATYMAP_TABLE"`
	Verbose   bool   `toml:"verbose" env:"PLATYMAP_VERBOSE"`

	// File is the configuration file that was loaded, if any.
	File string `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{TextFormat: string(script.JSON)}
}

// Load resolves the configuration. explicitPath, when set, must exist;
// otherwise FileName is searched for from startDir upward and may be absent.
// Relative db and table paths in a file are taken relative to that file.
func Load(startDir, explicitPath string) (*Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		found, err := Find(startDir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from startDir looking for FileName.
// Returns "" when no file is found.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	dir := filepath.Dir(path)
	c.DBPath = resolvePath(dir, c.DBPath)
	c.TablePath = resolvePath(dir, c.TablePath)
	c.File = path
	return nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks and normalizes the format names.
func (c *Config) Validate() error {
	f, err := script.ParseFormat(c.TextFormat)
	if err != nil {
		return fmt.Errorf("text_format: %w", err)
	}
	c.TextFormat = string(f)

	if c.InputFormat != "" {
		f, err := script.ParseFormat(c.InputFormat)
		if err != nil {
			return fmt.Errorf("input_format: %w", err)
		}
		c.InputFormat = string(f)
	}
	return nil
}
