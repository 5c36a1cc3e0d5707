// Package kotlin renders one Kotlin metadata object per discovered class: a property
// reference and a value accessor per property, plus element helpers for collections and maps.
package kotlin

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/typename"
)

// Name selects this generator in configuration.
const Name = "kotlin"

// ObjectSuffix is appended to the class name to name its metadata object.
const ObjectSuffix = "_"

//go:embed templates/*.tpl
var templates embed.FS

type Generator struct {
	tmpl *template.Template
}

var _ generator.Generator = (*Generator)(nil)

func New() *Generator {
	return &Generator{tmpl: template.Must(template.ParseFS(templates, "templates/*.tpl"))}
}

func (g *Generator) Name() string { return Name }

// Generate writes <Class>_.kt in the namespace directory of every class of r. A class whose
// properties cannot be translated is reported and skipped.
func (g *Generator) Generate(ctx context.Context, r *generator.Round) error {
	for c := range r.Classes.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := g.Render(c)
		if err != nil {
			r.Report.Error(err, "class", c.QualifiedName())
			continue
		}
		r.Writer.WriteFile(emit.NamespaceDir(c.Namespace()), FileName(c), content, emit.SourceOutput, r.Options.FailOnError)
	}
	return nil
}

// FileName is the name of the Kotlin file generated for c.
func FileName(c *model.Class) string {
	return c.Name() + ObjectSuffix + ".kt"
}

// Render returns the Kotlin source of the metadata object of c.
func (g *Generator) Render(c *model.Class) (string, error) {
	data, err := newObject(c)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "object", data); err != nil {
		return "", fmt.Errorf("render %s: %w", c.QualifiedName(), err)
	}
	return buf.String(), nil
}

type object struct {
	Namespace  string
	Class      string
	Object     string
	Internal   bool
	Properties []property
}

type property struct {
	Ref   string
	Type  string
	Find  string
	Value string
	Set   string
	// Element is the collection or map helper, nil for other properties.
	Element *helper
}

type helper struct {
	Func      string
	Param     string
	ParamType string
	Type      string
	Expr      string
}

func newObject(c *model.Class) (*object, error) {
	owner := typename.Class(c.QualifiedName())
	o := &object{
		Namespace: c.Namespace(),
		Class:     owner.String(),
		Object:    c.Name() + ObjectSuffix,
		Internal:  c.Internal(),
	}
	for _, p := range c.Properties(nil) {
		tn, err := p.Type()
		if err != nil {
			return nil, err
		}
		name := p.Name()
		prop := model.Reference(c, name, func() property {
			return property{
				Find:  FindProperty(owner, tn, name),
				Value: FindPropertyValue(owner, tn, "owner", name),
				Set:   SetPropertyValue(owner, tn, "owner", name, "value"),
			}
		}, func() property {
			return property{
				Find:  owner.String() + "::" + name,
				Value: "owner." + name,
			}
		})
		ref := model.Capitalize(name)
		prop.Ref, prop.Type = ref, tn.String()
		if prop.Element, err = elementHelper(p, tn, "get"+ref+"(owner)"); err != nil {
			return nil, err
		}
		o.Properties = append(o.Properties, prop)
	}
	return o, nil
}

// elementHelper builds <singular>At for collections and <singular>Of for maps. Collections
// whose type carries no argument get no helper.
func elementHelper(p *model.Property, tn *typename.TypeName, value string) (*helper, error) {
	singular := inflection.Singular(lowerFirst(p.Name()))
	access := "."
	if tn.Nullable {
		access = "?."
	}
	switch {
	case p.IsMap():
		key, ok, err := argument(p, 0)
		if !ok {
			return nil, err
		}
		val, ok, err := argument(p, 1)
		if !ok {
			return nil, err
		}
		return &helper{
			Func:      singular + "Of",
			Param:     "key",
			ParamType: projected(key).String(),
			Type:      projected(val).WithNullable(true).String(),
			Expr:      value + access + "get(key)",
		}, nil
	case p.IsCollection():
		elem, ok, err := argument(p, 0)
		if !ok {
			return nil, err
		}
		t := projected(elem)
		if tn.Nullable {
			t = t.WithNullable(true)
		}
		return &helper{
			Func:      singular + "At",
			Param:     "index",
			ParamType: "kotlin.Int",
			Type:      t.String(),
			Expr:      value + access + "elementAt(index)",
		}, nil
	}
	return nil, nil
}

// argument translates the type argument at i. A missing argument is not an error.
func argument(p *model.Property, i int) (*typename.TypeName, bool, error) {
	tn, err := p.TypeArgumentName(i)
	switch {
	case errors.Is(err, model.ErrNoTypeArgument):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return tn, true, nil
}

// projected is the type read through a projection: the bound of `out T`, kotlin.Any? for
// `in T` and `*`.
func projected(t *typename.TypeName) *typename.TypeName {
	if !t.IsWildcard() {
		return t
	}
	if t.Variance == typename.Producer && t.Bound != nil {
		return t.Bound
	}
	return typename.Class(typename.Any).WithNullable(true)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
