// Package report writes the discovered model as YAML in the class output. Snapshots record
// and compare these reports.
package report

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/model"
)

// Name selects this generator in configuration.
const Name = "report"

// FileName is the report written at the root of the class output.
const FileName = "kgenerator-model.yaml"

// Report is the model of every round processed so far.
type Report struct {
	Rounds  int     `yaml:"rounds"`
	Classes []Class `yaml:"classes"`
}

type Class struct {
	Name       string     `yaml:"name"`
	Round      int        `yaml:"round"`
	Internal   bool       `yaml:"internal,omitempty"`
	Properties []Property `yaml:"properties,omitempty"`
}

type Property struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Access string `yaml:"access"`
	// Kind is collection, map or empty.
	Kind      string `yaml:"kind,omitempty"`
	Namespace string `yaml:"element_namespace,omitempty"`
}

// Names lists the qualified class names of r in report order.
func (r *Report) Names() []string {
	out := make([]string, 0, len(r.Classes))
	for _, c := range r.Classes {
		out = append(out, c.Name)
	}
	return out
}

// Load reads a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", path, err)
	}
	return &r, nil
}

// Generator accumulates the classes of every round and rewrites the report after each one.
type Generator struct {
	report Report
}

var _ generator.Generator = (*Generator)(nil)

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Name }

// Report returns what has been recorded so far.
func (g *Generator) Report() *Report { return &g.report }

func (g *Generator) Generate(ctx context.Context, r *generator.Round) error {
	g.report.Rounds = r.Number
	for c := range r.Classes.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, err := describe(c, r.Number)
		if err != nil {
			r.Report.Error(err, "class", c.QualifiedName())
			continue
		}
		g.report.Classes = append(g.report.Classes, entry)
	}
	data, err := yaml.Marshal(&g.report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	r.Writer.WriteFile("", FileName, string(data), emit.ClassOutput, r.Options.FailOnError)
	return nil
}

func describe(c *model.Class, round int) (Class, error) {
	out := Class{Name: c.QualifiedName(), Round: round, Internal: c.Internal()}
	for _, p := range c.Properties(nil) {
		tn, err := p.Type()
		if err != nil {
			return Class{}, err
		}
		prop := Property{Name: p.Name(), Type: tn.String(), Access: p.Access().String()}
		switch rt := p.ReflectedType(); {
		case rt.IsMap():
			prop.Kind, prop.Namespace = "map", rt.MapValueNamespace()
		case rt.IsCollection():
			prop.Kind, prop.Namespace = "collection", rt.ElementNamespace()
		}
		out.Properties = append(out.Properties, prop)
	}
	return out, nil
}
