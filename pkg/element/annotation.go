package element

import "strings"

// AnnotationKind is the qualified name of an annotation type.
type AnnotationKind string

// SimpleName strips the qualifier.
func (k AnnotationKind) SimpleName() string {
	s := string(k)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Well-known annotation kinds.
const (
	// Nullable is the JetBrains nullability marker.
	Nullable AnnotationKind = "org.jetbrains.annotations.Nullable"
	// KgenNullable is the marker emitted by the Go source facade for pointer types and
	// //kgen:Nullable directives.
	KgenNullable AnnotationKind = "kgen.Nullable"
)

// Annotation is an annotation instance with its attribute values.
type Annotation interface {
	Kind() AnnotationKind
	// Bool returns a boolean attribute.
	Bool(name string) (bool, bool)
	// String returns a string attribute.
	String(name string) (string, bool)
	// Types returns a list-of-types attribute.
	Types(name string) ([]Type, bool)
}

// Values is a map backed Annotation. Attribute values are bool, string, Type or []Type.
type Values struct {
	kind   AnnotationKind
	values map[string]any
}

// NewAnnotation builds a Values annotation.
func NewAnnotation(kind AnnotationKind, values map[string]any) *Values {
	if values == nil {
		values = map[string]any{}
	}
	return &Values{kind: kind, values: values}
}

func (a *Values) Kind() AnnotationKind { return a.kind }

func (a *Values) Bool(name string) (bool, bool) {
	b, ok := a.values[name].(bool)
	return b, ok
}

func (a *Values) String(name string) (string, bool) {
	s, ok := a.values[name].(string)
	return s, ok
}

func (a *Values) Types(name string) ([]Type, bool) {
	switch v := a.values[name].(type) {
	case []Type:
		return v, true
	case Type:
		return []Type{v}, true
	}
	return nil, false
}

// FindAnnotation returns the first annotation of kind in list.
func FindAnnotation(list []Annotation, kind AnnotationKind) (Annotation, bool) {
	for _, a := range list {
		if a != nil && a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}

// HasAnyAnnotation reports whether list contains an annotation of any of kinds.
func HasAnyAnnotation(list []Annotation, kinds map[AnnotationKind]struct{}) bool {
	for _, a := range list {
		if a == nil {
			continue
		}
		if _, ok := kinds[a.Kind()]; ok {
			return true
		}
	}
	return false
}
