// Package emit writes generated files below the output roots of a run.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Litote/kgenerator/pkg/diag"
)

// Location selects an output root.
type Location int

const (
	// SourceOutput receives generated sources.
	SourceOutput Location = iota
	// ClassOutput receives resources such as model reports.
	ClassOutput
)

func (l Location) String() string {
	if l == ClassOutput {
		return "class"
	}
	return "source"
}

// Writer writes files and reports failures instead of returning them.
type Writer struct {
	roots   map[Location]string
	report  *diag.Reporter
	written []string
}

// New returns a Writer rooted at sourceDir and classDir. An empty classDir uses sourceDir.
func New(sourceDir, classDir string, report *diag.Reporter) *Writer {
	if classDir == "" {
		classDir = sourceDir
	}
	if report == nil {
		report = diag.Discard()
	}
	return &Writer{
		roots:  map[Location]string{SourceOutput: sourceDir, ClassOutput: classDir},
		report: report,
	}
}

// Root returns the directory of loc.
func (w *Writer) Root(loc Location) string {
	return w.roots[loc]
}

// WriteFile writes content to file in dir below the root of loc, creating directories as
// needed. On failure the content is logged, then the error is reported as an error when
// failOnError is set and as a warning otherwise. It reports whether the file was written.
func (w *Writer) WriteFile(dir, file, content string, loc Location, failOnError bool) bool {
	directory := filepath.Join(w.roots[loc], filepath.FromSlash(dir))
	w.report.Debug(func() any { return directory })
	path := filepath.Join(directory, file)
	err := w.write(directory, path, content)
	if err == nil {
		w.report.Debug(func() any { return path })
		w.written = append(w.written, path)
		return true
	}
	w.report.Note(fmt.Sprintf("Error writing %s in %s:\n%s", file, dir, content))
	if failOnError {
		w.report.Error(err, "file", file, "location", loc.String())
	} else {
		w.report.Warn(err.Error(), "file", file, "location", loc.String())
	}
	return false
}

func (w *Writer) write(directory, path, content string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Written lists the files written so far, in write order.
func (w *Writer) Written() []string {
	return append([]string(nil), w.written...)
}

// NamespaceDir turns a dotted namespace into a relative directory.
func NamespaceDir(namespace string) string {
	return strings.ReplaceAll(namespace, ".", "/")
}
