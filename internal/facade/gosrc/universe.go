package gosrc

import (
	"go/types"
	"strings"

	"github.com/Litote/kgenerator/pkg/element"
)

// Names given to unnamed Go type constructors.
const (
	SliceName = "slice"
	MapName   = "map"
	AnyName   = "any"
	VoidName  = "void"
)

// Universe exposes loaded Go packages as declarations.
type Universe struct {
	classes    map[*types.TypeName]*Element
	interfaces map[string]*types.Interface
	decls      []*Element
	namer      *namer
}

var _ element.Environment = (*Universe)(nil)

// Classes lists the struct declarations in load order.
func (u *Universe) Classes() []*Element {
	var out []*Element
	for _, d := range u.decls {
		if d.kind == element.KindClass {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a class by qualified name.
func (u *Universe) Lookup(qualified string) (*Element, bool) {
	for _, d := range u.decls {
		if d.kind == element.KindClass && element.QualifiedName(d) == qualified {
			return d, true
		}
	}
	return nil, false
}

func (u *Universe) ElementsAnnotatedWith(kind element.AnnotationKind) []element.Element {
	var out []element.Element
	for _, d := range u.decls {
		if _, ok := element.FindAnnotation(d.annotations, kind); ok {
			out = append(out, d)
		}
	}
	return out
}

func (u *Universe) Erasure(t element.Type) element.Type {
	gt, ok := t.(*Type)
	if !ok || gt.shape != element.ShapeParameterized {
		return t
	}
	c := *gt
	c.shape, c.args, c.annotations = element.ShapePlain, nil, nil
	return &c
}

// IsAssignable answers the collection and map anchors from the underlying Go type: slices
// and arrays are collections, maps are maps. Other targets match by name or, for loaded
// interfaces, by implementation.
func (u *Universe) IsAssignable(t element.Type, target string) bool {
	gt, ok := t.(*Type)
	if !ok {
		return false
	}
	if target == "java.lang.Object" {
		return true
	}
	if gt.shape != element.ShapePlain && gt.shape != element.ShapeParameterized {
		return false
	}
	switch target {
	case element.CollectionAnchor:
		if gt.name == SliceName {
			return true
		}
		if gt.gt == nil {
			return false
		}
		switch gt.gt.Underlying().(type) {
		case *types.Slice, *types.Array:
			return true
		}
		return false
	case element.MapAnchor:
		if gt.name == MapName {
			return true
		}
		if gt.gt == nil {
			return false
		}
		_, isMap := gt.gt.Underlying().(*types.Map)
		return isMap
	}
	if gt.name == target {
		return true
	}
	if gt.gt == nil {
		return false
	}
	if iface, ok := u.interfaces[target]; ok {
		return types.Implements(gt.gt, iface) || types.Implements(types.NewPointer(gt.gt), iface)
	}
	return false
}

// Element is a Go declaration: a struct type, a field, a method, a constructor function, a
// parameter or a package holding registry directives.
type Element struct {
	kind        element.Kind
	name        string
	namespace   string
	modifiers   element.Modifiers
	enclosed    []element.Element
	params      []element.Element
	typ         element.Type
	annotations []element.Annotation
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
	if e.owner == nil {
		return element.QualifiedName(e)
	}
	return e.owner.String() + "." + e.name
}

func (e *Element) add(m *Element) {
	m.owner = e
	e.enclosed = append(e.enclosed, m)
}

// Type is one occurrence of a Go type.
type Type struct {
	u           *Universe
	gt          types.Type
	obj         *types.TypeName
	shape       element.Shape
	name        string
	args        []element.Type
	elem        element.Type
	annotations []element.Annotation
}

var _ element.Type = (*Type)(nil)

func (t *Type) Shape() element.Shape              { return t.shape }
func (t *Type) Name() string                      { return t.name }
func (t *Type) Args() []element.Type              { return t.args }
func (t *Type) Bound() element.Type               { return nil }
func (t *Type) Elem() element.Type                { return t.elem }
func (t *Type) Annotations() []element.Annotation { return t.annotations }

func (t *Type) Element() element.Element {
	if t.obj == nil || t.u == nil {
		return nil
	}
	if c, ok := t.u.classes[t.obj]; ok {
		return c
	}
	return nil
}

func (t *Type) String() string {
	var b strings.Builder
	for _, a := range t.annotations {
		b.WriteString("@")
		b.WriteString(a.Kind().SimpleName())
		b.WriteString(" ")
	}
	switch t.shape {
	case element.ShapeArray:
		b.WriteString("[]")
		b.WriteString(t.elem.String())
	case element.ShapeParameterized:
		b.WriteString(t.name)
		b.WriteString("[")
		for i, a := range t.args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString("]")
	default:
		b.WriteString(t.name)
	}
	return b.String()
}

func (t *Type) annotated(anns ...element.Annotation) *Type {
	c := *t
	c.annotations = append(append([]element.Annotation{}, t.annotations...), anns...)
	return &c
}
