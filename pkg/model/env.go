// Package model is the annotated-entity model handed to generators: classes, their
// properties and the translated type of every property.
package model

import (
	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/translator"
)

// DefaultUnsupportedModifiers excludes a field from every property list.
var DefaultUnsupportedModifiers = element.Modifiers{element.ModifierStatic, element.ModifierTransient}

// DefaultAccessorPrefix prefixes the capitalized field name to find its getter.
const DefaultAccessorPrefix = "get"

// Env carries what the models need to answer queries for one round.
type Env struct {
	types          element.Types
	tr             *translator.Translator
	unsupported    element.Modifiers
	accessorPrefix string
	report         *diag.Reporter
}

type EnvOption func(*Env)

// WithUnsupportedModifiers replaces the default {static, transient} filter.
func WithUnsupportedModifiers(ms ...element.Modifier) EnvOption {
	return func(e *Env) { e.unsupported = append(element.Modifiers{}, ms...) }
}

// WithAccessorPrefix sets the getter naming prefix. An empty prefix names getters after the
// capitalized field, as Go does.
func WithAccessorPrefix(p string) EnvOption {
	return func(e *Env) { e.accessorPrefix = p }
}

func WithEnvReporter(r *diag.Reporter) EnvOption {
	return func(e *Env) {
		if r != nil {
			e.report = r
		}
	}
}

// NewEnv builds an Env. A nil translator uses translator.New().
func NewEnv(types element.Types, tr *translator.Translator, opts ...EnvOption) *Env {
	if tr == nil {
		tr = translator.New()
	}
	e := &Env{
		types:          types,
		tr:             tr,
		unsupported:    DefaultUnsupportedModifiers,
		accessorPrefix: DefaultAccessorPrefix,
		report:         diag.Discard(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Env) Types() element.Types               { return e.types }
func (e *Env) Translator() *translator.Translator { return e.tr }
func (e *Env) Reporter() *diag.Reporter           { return e.report }
func (e *Env) AccessorPrefix() string             { return e.accessorPrefix }

// Unsupported reports whether ms contains a modifier of the unsupported set.
func (e *Env) Unsupported(ms element.Modifiers) bool {
	return ms.Any(e.unsupported)
}

func (e *Env) isCollection(t element.Type) bool {
	return e.assignable(t, element.CollectionAnchor)
}

func (e *Env) isMap(t element.Type) bool {
	return e.assignable(t, element.MapAnchor)
}

func (e *Env) assignable(t element.Type, anchor string) bool {
	if t == nil || e.types == nil {
		return false
	}
	switch t.Shape() {
	case element.ShapePlain, element.ShapeParameterized:
		return e.types.IsAssignable(e.types.Erasure(t), anchor)
	}
	return false
}

// namespaceOf is the namespace of the declaration t resolves to, or of its array
// component.
func namespaceOf(t element.Type) string {
	for t != nil && t.Shape() == element.ShapeArray {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if el := t.Element(); el != nil {
		return el.Namespace()
	}
	return ""
}
