// Package mem is an in-memory reflection facade. It backs the YAML declaration descriptors
// and the tests of the core packages.
package mem

import (
	"strings"

	"github.com/Litote/kgenerator/pkg/element"
)

// Universe holds every declaration of one round.
type Universe struct {
	classes    map[string]*Element
	decls      []*Element
	supertypes map[string][]string
}

var _ element.Environment = (*Universe)(nil)

// New returns an empty universe that knows the JDK collection hierarchy.
func New() *Universe {
	u := &Universe{
		classes:    make(map[string]*Element),
		supertypes: make(map[string][]string, len(jdkHierarchy)),
	}
	for k, v := range jdkHierarchy {
		u.supertypes[k] = v
	}
	return u
}

// jdkHierarchy lists direct supertypes of the common java.util types.
var jdkHierarchy = map[string][]string{
	"java.util.Collection":                      {"java.lang.Iterable"},
	"java.util.List":                            {"java.util.Collection"},
	"java.util.Set":                             {"java.util.Collection"},
	"java.util.SortedSet":                       {"java.util.Set"},
	"java.util.NavigableSet":                    {"java.util.SortedSet"},
	"java.util.Queue":                           {"java.util.Collection"},
	"java.util.Deque":                           {"java.util.Queue"},
	"java.util.AbstractCollection":              {"java.util.Collection"},
	"java.util.AbstractList":                    {"java.util.AbstractCollection", "java.util.List"},
	"java.util.ArrayList":                       {"java.util.AbstractList", "java.util.List"},
	"java.util.LinkedList":                      {"java.util.AbstractList", "java.util.List", "java.util.Deque"},
	"java.util.AbstractSet":                     {"java.util.AbstractCollection", "java.util.Set"},
	"java.util.HashSet":                         {"java.util.AbstractSet", "java.util.Set"},
	"java.util.LinkedHashSet":                   {"java.util.HashSet"},
	"java.util.TreeSet":                         {"java.util.AbstractSet", "java.util.NavigableSet"},
	"java.util.EnumSet":                         {"java.util.AbstractSet"},
	"java.util.ArrayDeque":                      {"java.util.AbstractCollection", "java.util.Deque"},
	"java.util.SortedMap":                       {"java.util.Map"},
	"java.util.NavigableMap":                    {"java.util.SortedMap"},
	"java.util.AbstractMap":                     {"java.util.Map"},
	"java.util.HashMap":                         {"java.util.AbstractMap", "java.util.Map"},
	"java.util.LinkedHashMap":                   {"java.util.HashMap"},
	"java.util.TreeMap":                         {"java.util.AbstractMap", "java.util.NavigableMap"},
	"java.util.EnumMap":                         {"java.util.AbstractMap"},
	"java.util.concurrent.ConcurrentMap":        {"java.util.Map"},
	"java.util.concurrent.ConcurrentHashMap":    {"java.util.AbstractMap", "java.util.concurrent.ConcurrentMap"},
	"java.util.concurrent.CopyOnWriteArrayList": {"java.util.List"},
}

// Option configures an Element.
type Option func(*Element)

// WithModifiers sets the modifiers.
func WithModifiers(ms ...element.Modifier) Option {
	return func(e *Element) { e.modifiers = append(e.modifiers, ms...) }
}

// WithAnnotations attaches annotations.
func WithAnnotations(as ...element.Annotation) Option {
	return func(e *Element) { e.annotations = append(e.annotations, as...) }
}

// WithMembers adds enclosed members.
func WithMembers(members ...*Element) Option {
	return func(e *Element) {
		for _, m := range members {
			m.owner = e
			e.enclosed = append(e.enclosed, m)
		}
	}
}

// WithSupertypes declares direct supertypes by qualified name.
func WithSupertypes(names ...string) Option {
	return func(e *Element) { e.supertypes = append(e.supertypes, names...) }
}

// WithNamespace overrides the namespace derived from the qualified name.
func WithNamespace(ns string) Option {
	return func(e *Element) { e.namespace = ns }
}

// WithKind overrides the declaration kind.
func WithKind(k element.Kind) Option {
	return func(e *Element) { e.kind = k }
}

// Class declares a class. The namespace defaults to everything before the last dot of
// qualified.
func (u *Universe) Class(qualified string, opts ...Option) *Element {
	ns, simple := split(qualified)
	e := &Element{kind: element.KindClass, name: simple, namespace: ns}
	for _, o := range opts {
		o(e)
	}
	e.typ = &Type{u: u, shape: element.ShapePlain, name: qualified}
	u.classes[qualified] = e
	u.decls = append(u.decls, e)
	for _, s := range e.supertypes {
		u.supertypes[qualified] = append(u.supertypes[qualified], s)
	}
	return e
}

// Declare registers a non-class declaration, such as a registry holder.
func (u *Universe) Declare(qualified string, opts ...Option) *Element {
	ns, simple := split(qualified)
	e := &Element{kind: element.KindOther, name: simple, namespace: ns}
	for _, o := range opts {
		o(e)
	}
	u.decls = append(u.decls, e)
	return e
}

// Lookup returns the class declared as qualified.
func (u *Universe) Lookup(qualified string) (*Element, bool) {
	e, ok := u.classes[qualified]
	return e, ok
}

// Field builds a field member.
func Field(name string, t element.Type, opts ...Option) *Element {
	return member(element.KindField, name, t, opts)
}

// Method builds a method member returning t.
func Method(name string, t element.Type, opts ...Option) *Element {
	return member(element.KindMethod, name, t, opts)
}

// Param builds a parameter.
func Param(name string, t element.Type, opts ...Option) *Element {
	return member(element.KindParameter, name, t, opts)
}

// Constructor builds a constructor with params.
func Constructor(params []*Element, opts ...Option) *Element {
	e := member(element.KindConstructor, "<init>", nil, opts)
	for _, p := range params {
		p.owner = e
		e.params = append(e.params, p)
	}
	return e
}

func member(k element.Kind, name string, t element.Type, opts []Option) *Element {
	e := &Element{kind: k, name: name, typ: t}
	for _, o := range opts {
		o(e)
	}
	return e
}

func split(qualified string) (string, string) {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "", qualified
}

// ElementsAnnotatedWith returns declarations bearing kind in declaration order.
func (u *Universe) ElementsAnnotatedWith(kind element.AnnotationKind) []element.Element {
	var out []element.Element
	for _, d := range u.decls {
		if _, ok := element.FindAnnotation(d.annotations, kind); ok {
			out = append(out, d)
		}
	}
	return out
}

// Erasure drops the arguments of a parameterized type.
func (u *Universe) Erasure(t element.Type) element.Type {
	if t == nil || t.Shape() != element.ShapeParameterized {
		return t
	}
	return &Type{u: u, shape: element.ShapePlain, name: t.Name()}
}

// IsAssignable walks declared and built-in supertypes of t looking for target.
func (u *Universe) IsAssignable(t element.Type, target string) bool {
	if t == nil {
		return false
	}
	switch t.Shape() {
	case element.ShapePlain, element.ShapeParameterized:
	default:
		return target == "java.lang.Object"
	}
	if target == "java.lang.Object" {
		return true
	}
	seen := map[string]bool{}
	queue := []string{t.Name()}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == target {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		queue = append(queue, u.supertypes[n]...)
	}
	return false
}
