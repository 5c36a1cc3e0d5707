package mem

import (
	"strings"

	"github.com/Litote/kgenerator/pkg/element"
)

// Element is an in-memory declaration.
type Element struct {
	kind        element.Kind
	name        string
	namespace   string
	modifiers   element.Modifiers
	enclosed    []element.Element
	params      []element.Element
	typ         element.Type
	annotations []element.Annotation
	supertypes  []string
	owner       *Element
}

var _ element.Element = (*Element)(nil)

func (e *Element) Kind() element.Kind                { return e.kind }
func (e *Element) Name() string                      { return e.name }
func (e *Element) Modifiers() element.Modifiers      { return e.modifiers }
func (e *Element) Enclosed() []element.Element       { return e.enclosed }
func (e *Element) Params() []element.Element         { return e.params }
func (e *Element) Type() element.Type                { return e.typ }
func (e *Element) Annotations() []element.Annotation { return e.annotations }

func (e *Element) Namespace() string {
	if e.owner != nil {
		return e.owner.Namespace()
	}
	return e.namespace
}

func (e *Element) String() string {
	if e.kind == element.KindClass || e.owner == nil {
		return element.QualifiedName(e)
	}
	return e.name
}

// Type is an in-memory type occurrence.
type Type struct {
	u           *Universe
	shape       element.Shape
	name        string
	args        []element.Type
	bound       element.Type
	elem        element.Type
	annotations []element.Annotation
}

var _ element.Type = (*Type)(nil)

// Plain builds a plain type reference.
func (u *Universe) Plain(name string) *Type {
	return &Type{u: u, shape: element.ShapePlain, name: name}
}

// Parameterized builds a generic type reference.
func (u *Universe) Parameterized(name string, args ...element.Type) *Type {
	return &Type{u: u, shape: element.ShapeParameterized, name: name, args: args}
}

// Producer builds `? extends bound`. bound may be nil to model a malformed occurrence.
func (u *Universe) Producer(bound element.Type) *Type {
	return &Type{u: u, shape: element.ShapeProducer, bound: bound}
}

// Consumer builds `? super bound`.
func (u *Universe) Consumer(bound element.Type) *Type {
	return &Type{u: u, shape: element.ShapeConsumer, bound: bound}
}

// Array builds `elem[]`.
func (u *Universe) Array(elem element.Type) *Type {
	return &Type{u: u, shape: element.ShapeArray, elem: elem}
}

// Annotated returns a copy of t carrying anns on the occurrence.
func (t *Type) Annotated(anns ...element.Annotation) *Type {
	c := *t
	c.annotations = append(append([]element.Annotation{}, t.annotations...), anns...)
	return &c
}

func (t *Type) Shape() element.Shape              { return t.shape }
func (t *Type) Name() string                      { return t.name }
func (t *Type) Args() []element.Type              { return t.args }
func (t *Type) Bound() element.Type               { return t.bound }
func (t *Type) Elem() element.Type                { return t.elem }
func (t *Type) Annotations() []element.Annotation { return t.annotations }

// Element resolves plain and parameterized references against the universe.
func (t *Type) Element() element.Element {
	if t.u == nil {
		return nil
	}
	switch t.shape {
	case element.ShapePlain, element.ShapeParameterized:
		if e, ok := t.u.classes[t.name]; ok {
			return e
		}
	}
	return nil
}

func (t *Type) String() string {
	var b strings.Builder
	for _, a := range t.annotations {
		b.WriteString("@")
		b.WriteString(string(a.Kind()))
		b.WriteString(" ")
	}
	switch t.shape {
	case element.ShapePlain:
		b.WriteString(t.name)
	case element.ShapeParameterized:
		b.WriteString(t.name)
		b.WriteString("<")
		for i, a := range t.args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
	case element.ShapeProducer:
		b.WriteString("? extends ")
		b.WriteString(stringOf(t.bound))
	case element.ShapeConsumer:
		b.WriteString("? super ")
		b.WriteString(stringOf(t.bound))
	case element.ShapeArray:
		b.WriteString(stringOf(t.elem))
		b.WriteString("[]")
	default:
		b.WriteString("<invalid>")
	}
	return b.String()
}

func stringOf(t element.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
