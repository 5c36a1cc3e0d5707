// Package element defines the reflection surface the generator core reads from.
//
// A facade (Go sources, YAML declaration descriptors, an in-memory universe) exposes
// declarations as Element handles and type occurrences as Type values. The core only
// queries them; it never builds or mutates them.
package element

import (
	"slices"
	"strings"
)

// Kind is the kind of a declaration.
type Kind int

const (
	KindOther Kind = iota
	KindPackage
	KindClass
	KindField
	KindMethod
	KindConstructor
	KindParameter
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindParameter:
		return "parameter"
	default:
		return "other"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names map to KindOther.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "package":
		return KindPackage
	case "class":
		return KindClass
	case "field":
		return KindField
	case "method":
		return KindMethod
	case "constructor":
		return KindConstructor
	case "parameter":
		return KindParameter
	default:
		return KindOther
	}
}

// Modifier is a declaration modifier such as private or static.
type Modifier string

const (
	ModifierPublic    Modifier = "public"
	ModifierProtected Modifier = "protected"
	ModifierPrivate   Modifier = "private"
	ModifierStatic    Modifier = "static"
	ModifierTransient Modifier = "transient"
	ModifierFinal     Modifier = "final"
	ModifierAbstract  Modifier = "abstract"
)

// Modifiers is an ordered modifier list.
type Modifiers []Modifier

// Has reports whether m is present.
func (ms Modifiers) Has(m Modifier) bool {
	return slices.Contains(ms, m)
}

// Any reports whether at least one of set is present.
func (ms Modifiers) Any(set Modifiers) bool {
	for _, m := range ms {
		if set.Has(m) {
			return true
		}
	}
	return false
}

// ParseModifiers normalizes modifier names.
func ParseModifiers(names ...string) Modifiers {
	out := make(Modifiers, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		out = append(out, Modifier(n))
	}
	return out
}

// Shape is the structural variant of a type occurrence.
type Shape int

const (
	ShapeInvalid Shape = iota
	// ShapePlain is a named type without arguments.
	ShapePlain
	// ShapeParameterized is a named type with ordered arguments.
	ShapeParameterized
	// ShapeProducer is an upper-bounded wildcard (`? extends T`).
	ShapeProducer
	// ShapeConsumer is a lower-bounded wildcard (`? super T`).
	ShapeConsumer
	// ShapeArray is an array of one component type.
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeParameterized:
		return "parameterized"
	case ShapeProducer:
		return "producer"
	case ShapeConsumer:
		return "consumer"
	case ShapeArray:
		return "array"
	default:
		return "invalid"
	}
}

// Element is a declaration handle. Facades must hand out the same comparable value for the
// same declaration so handles can be used as map keys.
type Element interface {
	Kind() Kind
	// Name is the simple name.
	Name() string
	Modifiers() Modifiers
	// Enclosed lists members in declaration order.
	Enclosed() []Element
	// Params lists constructor or method parameters.
	Params() []Element
	// Type is the declared type of a field or parameter, the return type of a method,
	// or the declared type of a class.
	Type() Type
	Annotations() []Annotation
	// Namespace is the name of the enclosing package.
	Namespace() string
}

// Type is one occurrence of a source type.
type Type interface {
	Shape() Shape
	// Name is the raw qualified name of a plain or parameterized type.
	Name() string
	// Args returns the type arguments of a parameterized type.
	Args() []Type
	// Bound returns the bound of a wildcard, nil when missing.
	Bound() Type
	// Elem returns the component of an array.
	Elem() Type
	// Annotations present on this occurrence.
	Annotations() []Annotation
	// Element returns the declaration this occurrence resolves to, nil when none.
	Element() Element
	String() string
}

// Anchor types for the collection and map predicates.
const (
	CollectionAnchor = "java.util.Collection"
	MapAnchor        = "java.util.Map"
)

// Types answers subtype queries.
type Types interface {
	// Erasure drops generic arguments.
	Erasure(t Type) Type
	// IsAssignable reports whether t is assignable to the type named target.
	IsAssignable(t Type, target string) bool
}

// Environment is the facade for one discovery round.
type Environment interface {
	Types
	// ElementsAnnotatedWith returns every declaration directly bearing kind.
	ElementsAnnotatedWith(kind AnnotationKind) []Element
}

// QualifiedName joins the namespace and simple name of e.
func QualifiedName(e Element) string {
	if e == nil {
		return ""
	}
	if ns := e.Namespace(); ns != "" {
		return ns + "." + e.Name()
	}
	return e.Name()
}
