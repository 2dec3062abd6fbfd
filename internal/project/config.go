// Package project loads docfmt.toml, the per-project formatting
// configuration discovered upward from the working directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the manifest searched for in the start directory and
// its parents.
const ConfigFileName = "docfmt.toml"

// Manifest is a loaded configuration file and where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the docfmt.toml layout.
type Config struct {
	Format FormatConfig `toml:"format"`
	Files  FilesConfig  `toml:"files"`
}

// FormatConfig carries the layout options consumed by the formatter.
// UseTabs is a pointer so "unset" is distinguishable from "false"; unset
// defaults to spaces.
type FormatConfig struct {
	PrintWidth int   `toml:"print_width"`
	TabWidth   int   `toml:"tab_width"`
	UseTabs    *bool `toml:"use_tabs"`
}

// FilesConfig selects which files the driver collects.
type FilesConfig struct {
	Extensions []string `toml:"extensions"`
}

// Find walks from startDir upward looking for a config file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
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

// Load reads and decodes the manifest at path. Unknown keys are rejected
// so typos surface instead of silently doing nothing.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Discover finds and loads the nearest manifest. ok is false when no
// manifest exists, which is not an error.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}
