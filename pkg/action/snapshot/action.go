// Package snapshot records model reports in the manifest and compares the last two.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/Litote/kgenerator/internal/generator/report"
	"github.com/Litote/kgenerator/pkg/action/generate"
	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/manifest"
)

var (
	ErrNoPrevious      = errors.New("no current/previous snapshots recorded")
	ErrMissingSnapshot = errors.New("snapshot files not found in manifest")
)

// SnapshotDir holds the recorded reports, next to the manifest.
const SnapshotDir = "snapshots"

// Create runs the generators of opts plus the report generator, copies the report next to
// the manifest and records it as version. It returns the path of the recorded report.
func Create(ctx context.Context, opts *generator.Options, manifestPath, name, version string, rep *diag.Reporter) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if !slices.Contains(opts.Generators, report.Name) {
		opts.Generators = append(slices.Clone(opts.Generators), report.Name)
	}
	if _, err := generate.Run(ctx, opts, rep); err != nil {
		return "", err
	}

	r, err := report.Load(filepath.Join(opts.ClassOutDir, report.FileName))
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(opts.ClassOutDir, report.FileName))
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	file := filepath.Clean(filepath.Join(filepath.Dir(manifestPath), SnapshotDir, name+"-"+version+".yaml"))
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	m.AddSnapshot(manifest.Snapshot{Name: name, Version: version, File: file, Classes: r.Names()})
	if err := m.Save(manifestPath); err != nil {
		return "", err
	}
	return file, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious returns the diff from the previous to the current report, empty
// when they match.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", ErrNoPrevious
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)
	if currentPath == "" || previousPath == "" {
		return "", ErrMissingSnapshot
	}

	current, err := report.Load(currentPath)
	if err != nil {
		return "", fmt.Errorf("current snapshot: %w", err)
	}
	previous, err := report.Load(previousPath)
	if err != nil {
		return "", fmt.Errorf("previous snapshot: %w", err)
	}
	return cmp.Diff(previous, current), nil
}
