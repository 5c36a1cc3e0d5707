package model

import (
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/typename"
)

// ReflectedType wraps one source type occurrence.
type ReflectedType struct {
	env *Env
	t   element.Type
}

func newReflectedType(env *Env, t element.Type) *ReflectedType {
	return &ReflectedType{env: env, t: t}
}

func (r *ReflectedType) Type() element.Type   { return r.t }
func (r *ReflectedType) Shape() element.Shape { return r.t.Shape() }
func (r *ReflectedType) String() string       { return r.t.String() }

// IsCollection reports whether the erased type is assignable to the collection anchor.
func (r *ReflectedType) IsCollection() bool {
	return r.env.isCollection(r.t)
}

// IsMap reports whether the erased type is assignable to the map anchor.
func (r *ReflectedType) IsMap() bool {
	return r.env.isMap(r.t)
}

// TypeName translates the occurrence.
func (r *ReflectedType) TypeName() (*typename.TypeName, error) {
	return r.env.tr.Translate(r.t)
}

// TypeArgument returns the argument at i of a parameterized type.
func (r *ReflectedType) TypeArgument(i int) (*ReflectedType, bool) {
	if r.t.Shape() != element.ShapeParameterized {
		return nil, false
	}
	args := r.t.Args()
	if i < 0 || i >= len(args) {
		return nil, false
	}
	return newReflectedType(r.env, args[i]), true
}

// ElementNamespace is the namespace of the element type of a collection or array.
func (r *ReflectedType) ElementNamespace() string {
	if r.t.Shape() == element.ShapeArray {
		return namespaceOf(r.t.Elem())
	}
	if a, ok := r.TypeArgument(0); ok {
		return namespaceOf(unwrapWildcard(a.t))
	}
	return ""
}

// MapValueNamespace is the namespace of the value type of a map.
func (r *ReflectedType) MapValueNamespace() string {
	if a, ok := r.TypeArgument(1); ok {
		return namespaceOf(unwrapWildcard(a.t))
	}
	return ""
}

func unwrapWildcard(t element.Type) element.Type {
	switch t.Shape() {
	case element.ShapeProducer, element.ShapeConsumer:
		return t.Bound()
	}
	return t
}
