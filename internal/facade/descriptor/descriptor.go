// Package descriptor reads declarations from YAML descriptors. Every YAML document is one
// discovery round.
//
//	classes:
//	  - name: org.example.Person
//	    annotations:
//	      - kind: kgen.Entity
//	        values: {internal: true}
//	    members:
//	      - {kind: field, name: age, type: int, modifiers: [private]}
//	      - {kind: method, name: getAge, type: int, modifiers: [public]}
//	      - kind: constructor
//	        params:
//	          - {name: age, type: int}
//
// A type is either a qualified name, `name[]` for an array, `name?` for a nullable type, `?`
// for an unbounded wildcard, or a mapping with the keys name, args, extends, super, wildcard,
// array, nullable and annotations. Inside flow mappings such as `{name: a, type: "x.A?"}` the
// `?` shorthands must be quoted.
package descriptor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/element/mem"
)

// ObjectName bounds the `?` wildcard shorthand.
const ObjectName = "java.lang.Object"

var (
	ErrMissingName = errors.New("missing name")
	ErrBadType     = errors.New("invalid type")
	ErrBadMember   = errors.New("invalid member")
)

type Document struct {
	Classes []ClassSpec `yaml:"classes"`
}

type ClassSpec struct {
	Name        string           `yaml:"name"`
	Kind        string           `yaml:"kind,omitempty"`
	Namespace   string           `yaml:"namespace,omitempty"`
	Modifiers   []string         `yaml:"modifiers,omitempty"`
	Supertypes  []string         `yaml:"supertypes,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`
	Members     []MemberSpec     `yaml:"members,omitempty"`
}

type MemberSpec struct {
	Kind        string           `yaml:"kind"`
	Name        string           `yaml:"name,omitempty"`
	Type        *TypeSpec        `yaml:"type,omitempty"`
	Modifiers   []string         `yaml:"modifiers,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`
	Params      []MemberSpec     `yaml:"params,omitempty"`
}

// AnnotationSpec carries scalar attributes in Values and type list attributes in Types.
type AnnotationSpec struct {
	Kind   string                 `yaml:"kind"`
	Values map[string]any         `yaml:"values,omitempty"`
	Types  map[string][]*TypeSpec `yaml:"types,omitempty"`
}

type TypeSpec struct {
	Name        string           `yaml:"name,omitempty"`
	Args        []*TypeSpec      `yaml:"args,omitempty"`
	Extends     *TypeSpec        `yaml:"extends,omitempty"`
	Super       *TypeSpec        `yaml:"super,omitempty"`
	Wildcard    bool             `yaml:"wildcard,omitempty"`
	Array       *TypeSpec        `yaml:"array,omitempty"`
	Nullable    bool             `yaml:"nullable,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`
}

// UnmarshalYAML accepts the scalar shorthands besides the mapping form.
func (s *TypeSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v := strings.TrimSpace(n.Value)
		switch {
		case v == "?":
			s.Wildcard = true
		case strings.HasSuffix(v, "[]"):
			elem := &TypeSpec{}
			if err := elem.UnmarshalYAML(&yaml.Node{Kind: yaml.ScalarNode, Value: strings.TrimSuffix(v, "[]")}); err != nil {
				return err
			}
			s.Array = elem
		case strings.HasSuffix(v, "?"):
			s.Name, s.Nullable = strings.TrimSuffix(v, "?"), true
		default:
			s.Name = v
		}
		return nil
	}
	type plain TypeSpec
	return n.Decode((*plain)(s))
}

// LoadFile reads every round of the descriptor at path.
func LoadFile(path string) ([]*mem.Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes every document of r into a universe.
func Load(r io.Reader) ([]*mem.Universe, error) {
	dec := yaml.NewDecoder(r)
	var out []*mem.Universe
	for i := 1; ; i++ {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		u, err := Build(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, u)
	}
}

// Build declares the classes of doc in a new universe.
func Build(doc *Document) (*mem.Universe, error) {
	u := mem.New()
	b := &builder{u: u}
	for i, c := range doc.Classes {
		if err := b.class(c); err != nil {
			return nil, fmt.Errorf("class %d %s: %w", i+1, c.Name, err)
		}
	}
	return u, nil
}

type builder struct {
	u *mem.Universe
}

func (b *builder) class(c ClassSpec) error {
	if c.Name == "" {
		return ErrMissingName
	}
	anns, err := b.annotations(c.Annotations)
	if err != nil {
		return err
	}
	opts := []mem.Option{
		mem.WithModifiers(element.ParseModifiers(c.Modifiers...)...),
		mem.WithAnnotations(anns...),
		mem.WithSupertypes(c.Supertypes...),
	}
	if c.Namespace != "" {
		opts = append(opts, mem.WithNamespace(c.Namespace))
	}
	members := make([]*mem.Element, 0, len(c.Members))
	for _, m := range c.Members {
		el, err := b.member(m)
		if err != nil {
			return err
		}
		members = append(members, el)
	}
	opts = append(opts, mem.WithMembers(members...))

	kind := element.KindClass
	if c.Kind != "" {
		kind = element.ParseKind(c.Kind)
	}
	if kind == element.KindClass {
		b.u.Class(c.Name, opts...)
	} else {
		b.u.Declare(c.Name, append(opts, mem.WithKind(kind))...)
	}
	return nil
}

func (b *builder) member(m MemberSpec) (*mem.Element, error) {
	anns, err := b.annotations(m.Annotations)
	if err != nil {
		return nil, err
	}
	opts := []mem.Option{
		mem.WithModifiers(element.ParseModifiers(m.Modifiers...)...),
		mem.WithAnnotations(anns...),
	}
	kind := element.ParseKind(m.Kind)
	if kind == element.KindConstructor {
		params := make([]*mem.Element, 0, len(m.Params))
		for _, p := range m.Params {
			p.Kind = element.KindParameter.String()
			el, err := b.member(p)
			if err != nil {
				return nil, err
			}
			params = append(params, el)
		}
		return mem.Constructor(params, opts...), nil
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: %s without name", ErrBadMember, m.Kind)
	}
	t, err := b.typ(m.Type)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", m.Kind, m.Name, err)
	}
	switch kind {
	case element.KindField:
		return mem.Field(m.Name, t, opts...), nil
	case element.KindMethod:
		return mem.Method(m.Name, t, opts...), nil
	case element.KindParameter:
		return mem.Param(m.Name, t, opts...), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrBadMember, m.Kind)
}

func (b *builder) typ(s *TypeSpec) (*mem.Type, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: missing type", ErrBadType)
	}
	if s.Extends != nil && s.Super != nil {
		return nil, fmt.Errorf("%w: both extends and super", ErrBadType)
	}
	var (
		t   *mem.Type
		err error
	)
	switch {
	case s.Extends != nil:
		t, err = b.wildcard(s.Extends, b.u.Producer)
	case s.Super != nil:
		t, err = b.wildcard(s.Super, b.u.Consumer)
	case s.Wildcard:
		t = b.u.Producer(b.u.Plain(ObjectName).Annotated(element.NewAnnotation(element.Nullable, nil)))
	case s.Array != nil:
		var elem *mem.Type
		if elem, err = b.typ(s.Array); err == nil {
			t = b.u.Array(elem)
		}
	case s.Name == "":
		return nil, fmt.Errorf("%w: missing name", ErrBadType)
	case len(s.Args) > 0:
		args := make([]element.Type, 0, len(s.Args))
		for _, a := range s.Args {
			at, err := b.typ(a)
			if err != nil {
				return nil, fmt.Errorf("%s argument: %w", s.Name, err)
			}
			args = append(args, at)
		}
		t = b.u.Parameterized(s.Name, args...)
	default:
		t = b.u.Plain(s.Name)
	}
	if err != nil {
		return nil, err
	}
	anns, err := b.annotations(s.Annotations)
	if err != nil {
		return nil, err
	}
	if s.Nullable {
		anns = append(anns, element.NewAnnotation(element.Nullable, nil))
	}
	if len(anns) > 0 {
		t = t.Annotated(anns...)
	}
	return t, nil
}

func (b *builder) wildcard(bound *TypeSpec, wrap func(element.Type) *mem.Type) (*mem.Type, error) {
	bt, err := b.typ(bound)
	if err != nil {
		return nil, fmt.Errorf("wildcard bound: %w", err)
	}
	return wrap(bt), nil
}

func (b *builder) annotations(specs []AnnotationSpec) ([]element.Annotation, error) {
	out := make([]element.Annotation, 0, len(specs))
	for _, s := range specs {
		if s.Kind == "" {
			return nil, fmt.Errorf("annotation: %w", ErrMissingName)
		}
		values := make(map[string]any, len(s.Values)+len(s.Types))
		for k, v := range s.Values {
			values[k] = v
		}
		for k, specs := range s.Types {
			types := make([]element.Type, 0, len(specs))
			for _, ts := range specs {
				t, err := b.typ(ts)
				if err != nil {
					return nil, fmt.Errorf("annotation %s.%s: %w", s.Kind, k, err)
				}
				types = append(types, t)
			}
			values[k] = types
		}
		out = append(out, element.NewAnnotation(element.AnnotationKind(s.Kind), values))
	}
	return out, nil
}
