// Package generate runs the configured generators over a Go module or a declaration
// descriptor.
package generate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Litote/kgenerator/internal/facade/descriptor"
	"github.com/Litote/kgenerator/internal/facade/gosrc"
	"github.com/Litote/kgenerator/internal/generator/golang"
	"github.com/Litote/kgenerator/internal/generator/kotlin"
	"github.com/Litote/kgenerator/internal/generator/report"
	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/translator"
)

var ErrUnknownGenerator = errors.New("unknown generator")

// Result summarizes a run.
type Result struct {
	Rounds   int
	Classes  []string
	Files    []string
	Errors   int
	Warnings int
}

var builtins = map[string]func() generator.Generator{
	kotlin.Name: func() generator.Generator { return kotlin.New() },
	golang.Name: func() generator.Generator { return golang.New() },
	report.Name: func() generator.Generator { return report.New() },
}

// Generators lists the names of the built-in generators.
func Generators() []string {
	out := make([]string, 0, len(builtins))
	for n := range builtins {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Lookup returns fresh instances of the named generators, in order.
func Lookup(names ...string) ([]generator.Generator, error) {
	out := make([]generator.Generator, 0, len(names))
	for _, n := range names {
		mk, ok := builtins[n]
		if !ok {
			return nil, fmt.Errorf("%w %q, expected one of %v", ErrUnknownGenerator, n, Generators())
		}
		out = append(out, mk())
	}
	return out, nil
}

// Run loads the rounds described by opts and processes them in order. opts must be
// normalized. Diagnostics go to rep; their counts are part of the result.
func Run(ctx context.Context, opts *generator.Options, rep *diag.Reporter) (*Result, error) {
	if rep == nil {
		rep = diag.Discard()
	}
	gens, err := Lookup(opts.Generators...)
	if err != nil {
		return nil, err
	}
	rounds, table, err := load(ctx, opts)
	if err != nil {
		return nil, err
	}

	w := emit.New(opts.OutDir, opts.ClassOutDir, rep)
	p := generator.NewProcessor(opts, opts.Translator(table, rep), rep, gens...)
	res := &Result{}
	for _, env := range rounds {
		r, err := p.Process(ctx, env, w)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", p.Rounds(), err)
		}
		for c := range r.Classes.All() {
			res.Classes = append(res.Classes, c.QualifiedName())
		}
	}
	res.Rounds = p.Rounds()
	res.Files = w.Written()
	res.Errors = rep.Errors()
	res.Warnings = rep.Warnings()
	rep.Note("generation done", "rounds", res.Rounds, "classes", len(res.Classes), "files", len(res.Files))
	return res, nil
}

// load returns the rounds of the input and the renaming table matching its source
// vocabulary.
func load(ctx context.Context, opts *generator.Options) ([]element.Environment, translator.Renames, error) {
	switch opts.InputFormat {
	case generator.FormatDescriptor:
		us, err := descriptor.LoadFile(opts.InDir)
		if err != nil {
			return nil, nil, fmt.Errorf("load descriptor %s: %w", opts.InDir, err)
		}
		out := make([]element.Environment, 0, len(us))
		for _, u := range us {
			out = append(out, u)
		}
		return out, translator.JavaToKotlin, nil
	case generator.FormatGo:
		filters := make([]gosrc.TagFilter, 0, len(opts.ExcludeByTags))
		for _, f := range opts.ExcludeByTags {
			filters = append(filters, gosrc.TagFilter{Key: f.Key, Value: f.Value})
		}
		u, err := gosrc.Load(ctx, gosrc.Config{
			Dir:             opts.InDir,
			Patterns:        opts.Patterns,
			NamespacePrefix: opts.NamespacePrefix,
			TagFilters:      filters,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("load go packages in %s: %w", opts.InDir, err)
		}
		return []element.Environment{u}, translator.GoToKotlin, nil
	}
	return nil, nil, fmt.Errorf("unknown input format %q", opts.InputFormat)
}
