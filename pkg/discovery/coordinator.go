// Package discovery collects the classes of one round from a direct marker annotation and
// a registry annotation that lists classes by reference.
package discovery

import (
	"errors"
	"fmt"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/model"
)

// Attribute names read from the direct and registry annotations.
const (
	InternalAttr = "internal"
	ValueAttr    = "value"
)

type Coordinator struct {
	env    *model.Env
	report *diag.Reporter
}

func New(env *model.Env, report *diag.Reporter) *Coordinator {
	if report == nil {
		report = diag.Discard()
	}
	return &Coordinator{env: env, report: report}
}

// Discover returns the classes bearing direct followed by the classes listed in the value
// attribute of every registry annotation. A declaration reached twice keeps its first
// entry, so direct discovery wins over registries and the first registry wins over later
// ones.
func (c *Coordinator) Discover(env element.Environment, direct, registry element.AnnotationKind) *model.ClassSet {
	directs := c.Direct(env, direct)
	c.report.Debug(func() any { return fmt.Sprintf("%s classes: %s", direct.SimpleName(), directs) })

	out := model.NewClassSet(directs.List()...)
	if registry != "" {
		registered := c.Registered(env, registry)
		c.report.Debug(func() any { return fmt.Sprintf("%s classes: %s", registry.SimpleName(), registered) })
		for cl := range registered.All() {
			if !out.Add(cl) {
				c.report.Debug(func() any { return fmt.Sprintf("%s already discovered", cl) })
			}
		}
	}
	if out.IsNotEmpty() {
		c.report.Note(fmt.Sprintf("Found %s classes: %s", direct.SimpleName(), out))
	}
	return out
}

// Direct wraps every class declaration bearing kind with the annotation's own internal flag.
func (c *Coordinator) Direct(env element.Environment, kind element.AnnotationKind) *model.ClassSet {
	out := model.NewClassSet()
	for _, el := range env.ElementsAnnotatedWith(kind) {
		if el.Kind() != element.KindClass {
			c.report.Warn("annotation ignored on non class declaration", "annotation", string(kind), "element", element.QualifiedName(el))
			continue
		}
		a, _ := element.FindAnnotation(el.Annotations(), kind)
		out.Add(model.NewClass(c.env, el, InternalOf(a)))
	}
	return out
}

// Registered wraps every class listed by annotations of kind, each with the internal flag
// of the registry it is listed in.
func (c *Coordinator) Registered(env element.Environment, kind element.AnnotationKind) *model.ClassSet {
	out := model.NewClassSet()
	for _, holder := range env.ElementsAnnotatedWith(kind) {
		a, _ := element.FindAnnotation(holder.Annotations(), kind)
		classes, err := RegistryClasses(a)
		if err != nil {
			c.report.Warn(err.Error(), "annotation", string(kind), "element", element.QualifiedName(holder))
			continue
		}
		internal := InternalOf(a)
		for _, el := range classes {
			out.Add(model.NewClass(c.env, el, internal))
		}
		for _, t := range unresolved(a) {
			c.report.Warn("registry entry is not a class", "annotation", string(kind), "element", element.QualifiedName(holder), "type", t.String())
		}
	}
	return out
}

// InternalOf reads the internal attribute of a, false when absent.
func InternalOf(a element.Annotation) bool {
	if a == nil {
		return false
	}
	v, _ := a.Bool(InternalAttr)
	return v
}

// ErrNoValue is returned for a registry annotation without a value attribute.
var ErrNoValue = errors.New("registry annotation has no value attribute")

// RegistryClasses resolves the value attribute of a registry annotation to class
// declarations, in listing order. Entries that do not resolve to a class are left out.
func RegistryClasses(a element.Annotation) ([]element.Element, error) {
	if a == nil {
		return nil, ErrNoValue
	}
	types, ok := a.Types(ValueAttr)
	if !ok {
		return nil, ErrNoValue
	}
	out := make([]element.Element, 0, len(types))
	for _, t := range types {
		if el := classOf(t); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

func unresolved(a element.Annotation) []element.Type {
	types, _ := a.Types(ValueAttr)
	var out []element.Type
	for _, t := range types {
		if classOf(t) == nil {
			out = append(out, t)
		}
	}
	return out
}

func classOf(t element.Type) element.Element {
	if t == nil {
		return nil
	}
	el := t.Element()
	if el == nil || el.Kind() != element.KindClass {
		return nil
	}
	return el
}
