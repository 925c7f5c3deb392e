// Package manifest handles oil.toml runtime configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an oil.toml runtime configuration.
type Manifest struct {
	Runtime  RuntimeConfig  `toml:"runtime"`
	Snapshot SnapshotConfig `toml:"snapshot"`

	// Dir is the directory containing the oil.toml file (set at load time).
	Dir string `toml:"-"`
}

// RuntimeConfig tunes heap bookkeeping.
type RuntimeConfig struct {
	// CheckHeaders runs a full-heap header audit before a snapshot is
	// taken. An audit failure aborts the process.
	CheckHeaders bool `toml:"check-headers"`

	// MaxHeapBytes warns when the live heap exceeds this size.
	// Zero disables the check.
	MaxHeapBytes int64 `toml:"max-heap-bytes"`
}

// SnapshotConfig configures snapshot output.
type SnapshotConfig struct {
	Output          string `toml:"output"`
	IncludePayloads bool   `toml:"include-payloads"`
}

// Load parses an oil.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "oil.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Snapshot.Output == "" {
		m.Snapshot.Output = "oil.heap"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find an oil.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "oil.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// OutputPath returns the absolute path for snapshot output.
func (m *Manifest) OutputPath() string {
	if filepath.IsAbs(m.Snapshot.Output) {
		return m.Snapshot.Output
	}
	return filepath.Join(m.Dir, m.Snapshot.Output)
}
