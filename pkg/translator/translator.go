// Package translator maps source type occurrences to Kotlin type descriptors.
package translator

import (
	"errors"
	"fmt"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/typename"
)

var (
	// ErrMissingBound is returned when a wildcard occurrence has no bound.
	ErrMissingBound = errors.New("wildcard without bound")
	// ErrUnknownShape is returned for a type occurrence of an unsupported shape.
	ErrUnknownShape = errors.New("unknown type shape")
	// ErrNilType is returned when asked to translate a nil occurrence.
	ErrNilType = errors.New("nil type")
)

// DefaultNullableAnnotations are the markers recognized when none are configured.
var DefaultNullableAnnotations = []element.AnnotationKind{element.Nullable, element.KgenNullable}

// Translator is safe for concurrent use once built.
type Translator struct {
	renames               Renames
	nullable              map[element.AnnotationKind]struct{}
	nullableProducerBound bool
	report                *diag.Reporter
}

// Option configures a Translator.
type Option func(*Translator)

// WithRenames layers entries over the renaming table.
func WithRenames(r Renames) Option {
	return func(t *Translator) { t.renames = t.renames.Merge(r) }
}

// WithTable replaces the renaming table.
func WithTable(r Renames) Option {
	return func(t *Translator) { t.renames = r.Merge() }
}

// WithNullableAnnotations replaces the nullability marker set.
func WithNullableAnnotations(kinds ...element.AnnotationKind) Option {
	return func(t *Translator) {
		t.nullable = make(map[element.AnnotationKind]struct{}, len(kinds))
		for _, k := range kinds {
			t.nullable[k] = struct{}{}
		}
	}
}

// WithNullableProducerBounds makes every `out` projection bound nullable.
func WithNullableProducerBounds() Option {
	return func(t *Translator) { t.nullableProducerBound = true }
}

// WithReporter sends per-shape traces to r. A nil r is ignored.
func WithReporter(r *diag.Reporter) Option {
	return func(t *Translator) {
		if r != nil {
			t.report = r
		}
	}
}

// New returns a Translator using JavaToKotlin unless configured otherwise.
func New(opts ...Option) *Translator {
	t := &Translator{
		renames: JavaToKotlin.Merge(),
		report:  diag.Discard(),
	}
	WithNullableAnnotations(DefaultNullableAnnotations...)(t)
	for _, o := range opts {
		o(t)
	}
	return t
}

// Translate maps src to its target descriptor.
func (t *Translator) Translate(src element.Type) (*typename.TypeName, error) {
	if src == nil {
		return nil, ErrNilType
	}
	var (
		out *typename.TypeName
		err error
	)
	switch src.Shape() {
	case element.ShapePlain:
		t.report.Debug(func() any { return "class: " + src.String() })
		out = typename.Class(t.rename(src.Name()))
	case element.ShapeParameterized:
		out, err = t.parameterized(t.rename(src.Name()), src.Args())
	case element.ShapeArray:
		out, err = t.parameterized(typename.Array, []element.Type{src.Elem()})
	case element.ShapeProducer:
		t.report.Debug(func() any { return "out: " + src.String() })
		var bound *typename.TypeName
		if bound, err = t.bound(src); err == nil {
			if t.nullableProducerBound {
				bound = bound.WithNullable(true)
			}
			out = typename.ProducerOf(bound)
		}
	case element.ShapeConsumer:
		t.report.Debug(func() any { return "in: " + src.String() })
		var bound *typename.TypeName
		if bound, err = t.bound(src); err == nil {
			out = typename.ConsumerOf(bound)
		}
	default:
		return nil, fmt.Errorf("%w %v: %s", ErrUnknownShape, src.Shape(), src)
	}
	if err != nil {
		return nil, err
	}
	if out.Kind == typename.KindNamed && t.IsNullable(src) {
		out = out.WithNullable(true)
	}
	t.report.Debug(func() any { return out.String() })
	return out, nil
}

// Untranslated renders src in the source vocabulary. Only the nullability overlay is
// applied; names are not renamed.
func (t *Translator) Untranslated(src element.Type) (*typename.TypeName, error) {
	if src == nil {
		return nil, ErrNilType
	}
	var out *typename.TypeName
	switch src.Shape() {
	case element.ShapePlain:
		out = typename.Class(src.Name())
	case element.ShapeParameterized:
		args := make([]*typename.TypeName, 0, len(src.Args()))
		for _, a := range src.Args() {
			ta, err := t.Untranslated(a)
			if err != nil {
				return nil, err
			}
			args = append(args, ta)
		}
		out = typename.Parameterized(src.Name(), args...)
	case element.ShapeArray:
		elem, err := t.Untranslated(src.Elem())
		if err != nil {
			return nil, err
		}
		out = typename.Parameterized(typename.Array, elem)
	case element.ShapeProducer, element.ShapeConsumer:
		if src.Bound() == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingBound, src)
		}
		bound, err := t.Untranslated(src.Bound())
		if err != nil {
			return nil, err
		}
		if src.Shape() == element.ShapeProducer {
			return typename.ProducerOf(bound), nil
		}
		return typename.ConsumerOf(bound), nil
	default:
		return nil, fmt.Errorf("%w %v: %s", ErrUnknownShape, src.Shape(), src)
	}
	return out.WithNullable(t.IsNullable(src)), nil
}

// IsNullable reports whether a nullability marker is present on the occurrence or, when
// absent there, on the declaration the occurrence resolves to.
func (t *Translator) IsNullable(src element.Type) bool {
	if element.HasAnyAnnotation(src.Annotations(), t.nullable) {
		return true
	}
	if decl := src.Element(); decl != nil {
		return element.HasAnyAnnotation(decl.Annotations(), t.nullable)
	}
	return false
}

// IsNullableMarker reports whether kind is one of the configured nullability markers.
func (t *Translator) IsNullableMarker(kind element.AnnotationKind) bool {
	_, ok := t.nullable[kind]
	return ok
}

// Rename returns the target name of a qualified source name, or the name itself.
func (t *Translator) Rename(source string) string {
	return t.rename(source)
}

func (t *Translator) rename(source string) string {
	if n, ok := t.renames.Lookup(source); ok {
		return n
	}
	return source
}

func (t *Translator) parameterized(raw string, args []element.Type) (*typename.TypeName, error) {
	targs := make([]*typename.TypeName, 0, len(args))
	for _, a := range args {
		ta, err := t.Translate(a)
		if err != nil {
			return nil, err
		}
		targs = append(targs, ta)
	}
	if isByteArray(raw, targs) {
		return typename.Class(typename.ByteArray), nil
	}
	return typename.Parameterized(raw, targs...), nil
}

// isByteArray detects Array<Byte>, which Kotlin spells ByteArray. A nullable Byte argument
// stays a generic array since ByteArray cannot hold nulls.
func isByteArray(raw string, args []*typename.TypeName) bool {
	if raw != typename.Array || len(args) != 1 {
		return false
	}
	a := args[0]
	return a.Kind == typename.KindNamed && a.Name == typename.Byte && len(a.Args) == 0 && !a.Nullable
}

func (t *Translator) bound(src element.Type) (*typename.TypeName, error) {
	b := src.Bound()
	if b == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrMissingBound, src.Shape(), src)
	}
	return t.Translate(b)
}
