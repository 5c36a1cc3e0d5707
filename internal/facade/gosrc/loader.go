// Package gosrc exposes Go packages as declarations: named struct types are classes, their
// fields are properties, methods are accessors and a New<Type> function is the
// constructor. Annotations are written as //kgen:<Name> key=value directives on types,
// fields, functions and package clauses.
package gosrc

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// Config selects the packages to load.
type Config struct {
	// Dir is the directory patterns are resolved from. It must be inside a module.
	Dir      string
	Patterns []string
	// NamespacePrefix re-roots the packages of the main module.
	NamespacePrefix string
	TagFilters      []TagFilter
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedDeps

// Load type-checks the packages matched by cfg.
func Load(ctx context.Context, cfg Config) (*Universe, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	modDir, err := findGoModDir(dir)
	if err != nil {
		return nil, err
	}
	modPath, err := modulePath(modDir)
	if err != nil {
		return nil, err
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Fset:    token.NewFileSet(),
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	var errs []error
	for _, p := range pkgs {
		for _, e := range p.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load packages: %w", errors.Join(errs...))
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	b := newBuilder(newNamer(modPath, cfg.NamespacePrefix), cfg.TagFilters)
	return b.build(pkgs), nil
}

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(dir string) (string, error) {
	from := dir
	for {
		if _, err := os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("no go.mod found above %s", dir)
		}
		from = parent
	}
}

func modulePath(modDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", err
	}
	mf, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return "", fmt.Errorf("parse go.mod: %w", err)
	}
	if mf.Module == nil {
		return "", fmt.Errorf("%s: missing module directive", filepath.Join(modDir, "go.mod"))
	}
	return mf.Module.Mod.Path, nil
}
