// Package manifest records the model snapshots taken by `kgenerator snapshot create`.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the manifest location used when none is configured.
const DefaultPath = ".kgenerator/manifest.yaml"

// Snapshot is one recorded model report.
type Snapshot struct {
	Name    string   `yaml:"name" json:"name"`
	Version string   `yaml:"version" json:"version"`
	File    string   `yaml:"file" json:"file"`
	Classes []string `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// Manifest tracks the snapshots and the two most recent versions.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// AddSnapshot makes s the current version. Re-recording a name and version replaces the
// earlier entry in place.
func (m *Manifest) AddSnapshot(s Snapshot) {
	if m.CurrentVersion != "" && m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version

	i := slices.IndexFunc(m.Snapshots, func(e Snapshot) bool {
		return e.Name == s.Name && e.Version == s.Version
	})
	if i >= 0 {
		m.Snapshots[i] = s
		return
	}
	m.Snapshots = append(m.Snapshots, s)
}

// Find returns the last snapshot recorded for version.
func (m *Manifest) Find(version string) (Snapshot, bool) {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Version == version {
			return m.Snapshots[i], true
		}
	}
	return Snapshot{}, false
}

// SnapshotFile returns the report file of version, empty when unknown.
func (m *Manifest) SnapshotFile(version string) string {
	s, _ := m.Find(version)
	return s.File
}
