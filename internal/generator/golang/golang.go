// Package golang renders the discovered model as Go source: one model_gen.go per namespace
// listing the properties of every class.
package golang

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/model"
)

// Name selects this generator in configuration.
const Name = "golang"

// FileName is the file written in every namespace directory.
const FileName = "model_gen.go"

// DefaultPackage names the package of classes without namespace.
const DefaultPackage = "model"

// Generator accumulates the classes of every round per namespace and rewrites the file of
// each namespace the round touched, so classes of earlier rounds are kept.
type Generator struct {
	seen       map[string]bool
	namespaces namespaces
}

var _ generator.Generator = (*Generator)(nil)

func New() *Generator { return &Generator{seen: map[string]bool{}} }

func (g *Generator) Name() string { return Name }

// Generate writes the file of every namespace holding a class of r.
func (g *Generator) Generate(ctx context.Context, r *generator.Round) error {
	var touched []*namespace
	r.Classes.ForEach(func(c *model.Class) {
		if g.seen[c.QualifiedName()] {
			return
		}
		g.seen[c.QualifiedName()] = true
		if ns := g.namespaces.add(c); !slices.Contains(touched, ns) {
			touched = append(touched, ns)
		}
	})
	for _, ns := range touched {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := g.Render(ns.name, ns.classes)
		if err != nil {
			r.Report.Error(err, "namespace", ns.name)
			continue
		}
		r.Writer.WriteFile(emit.NamespaceDir(ns.name), FileName, content, emit.SourceOutput, r.Options.FailOnError)
	}
	return nil
}

type namespace struct {
	name    string
	classes []*model.Class
}

// namespaces keeps the order in which namespaces first appear.
type namespaces struct {
	list  []*namespace
	index map[string]*namespace
}

func (n *namespaces) add(c *model.Class) *namespace {
	if n.index == nil {
		n.index = map[string]*namespace{}
	}
	ns, ok := n.index[c.Namespace()]
	if !ok {
		ns = &namespace{name: c.Namespace()}
		n.index[ns.name] = ns
		n.list = append(n.list, ns)
	}
	ns.classes = append(ns.classes, c)
	return ns
}

// byNamespace groups classes in the order their namespace first appears.
func byNamespace(set *model.ClassSet) []*namespace {
	var n namespaces
	set.ForEach(func(c *model.Class) { n.add(c) })
	return n.list
}

// Render returns the Go source declaring the classes of namespace ns.
func (g *Generator) Render(ns string, classes []*model.Class) (string, error) {
	f := jen.NewFile(PackageName(ns))
	f.HeaderComment("Code generated by kgenerator. DO NOT EDIT.")

	f.Comment("Property describes one property of a discovered class.")
	f.Type().Id("Property").Struct(
		jen.Id("Name").String(),
		jen.Comment("Type is the translated type."),
		jen.Id("Type").String(),
		jen.Id("Access").String(),
		jen.Id("Nullable").Bool(),
		jen.Id("Collection").Bool(),
		jen.Id("Map").Bool(),
	)

	entities := jen.Dict{}
	for _, c := range classes {
		id := model.Capitalize(c.Name()) + "Properties"
		values, err := properties(c)
		if err != nil {
			return "", err
		}
		f.Line()
		f.Commentf("%s lists the properties of %s.", id, c.QualifiedName())
		f.Var().Id(id).Op("=").Index().Id("Property").Values(values...)
		entities[jen.Lit(c.QualifiedName())] = jen.Id(id)
	}

	f.Line()
	f.Comment("Entities indexes the property lists by qualified class name.")
	f.Var().Id("Entities").Op("=").Map(jen.String()).Index().Id("Property").Values(entities)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("render namespace %q: %w", ns, err)
	}
	return buf.String(), nil
}

func properties(c *model.Class) ([]jen.Code, error) {
	var out []jen.Code
	for _, p := range c.Properties(nil) {
		tn, err := p.Type()
		if err != nil {
			return nil, err
		}
		out = append(out, jen.Values(jen.Dict{
			jen.Id("Name"):       jen.Lit(p.Name()),
			jen.Id("Type"):       jen.Lit(tn.String()),
			jen.Id("Access"):     jen.Lit(p.Access().String()),
			jen.Id("Nullable"):   jen.Lit(tn.Nullable),
			jen.Id("Collection"): jen.Lit(p.IsCollection()),
			jen.Id("Map"):        jen.Lit(p.IsMap()),
		}))
	}
	return out, nil
}

// PackageName is the last segment of ns made a valid package name.
func PackageName(ns string) string {
	name := ns
	if i := strings.LastIndex(ns, "."); i >= 0 {
		name = ns[i+1:]
	}
	name = strings.ToLower(strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, name))
	switch {
	case name == "":
		return DefaultPackage
	case token.IsKeyword(name):
		return name + "_"
	case !token.IsIdentifier(name):
		return "_" + name
	}
	return name
}
