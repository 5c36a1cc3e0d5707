package model

import (
	"errors"
	"fmt"

	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/typename"
)

// ErrNoTypeArgument is returned when a property type has no argument at the requested index.
var ErrNoTypeArgument = errors.New("no type argument")

// Property joins a field to its getter and to the same-named constructor parameter. The
// links are resolved when the property is built.
type Property struct {
	class  *Class
	field  element.Element
	getter element.Element
	param  element.Element
}

func (p *Property) Name() string                 { return p.field.Name() }
func (p *Property) Element() element.Element     { return p.field }
func (p *Property) Modifiers() element.Modifiers { return p.field.Modifiers() }
func (p *Property) Class() *Class                { return p.class }
func (p *Property) ReflectedType() *ReflectedType {
	return newReflectedType(p.class.env, p.field.Type())
}
func (p *Property) IsCollection() bool { return p.ReflectedType().IsCollection() }
func (p *Property) IsMap() bool        { return p.ReflectedType().IsMap() }
func (p *Property) Access() Access     { return p.class.Access(p.Name()) }

// HasAnnotation reports whether Annotation finds kind.
func (p *Property) HasAnnotation(kind element.AnnotationKind) bool {
	_, ok := p.Annotation(kind)
	return ok
}

// Getter returns the accessor method, if any.
func (p *Property) Getter() (element.Element, bool) {
	return p.getter, p.getter != nil
}

// Parameter returns the matching constructor parameter, if any.
func (p *Property) Parameter() (element.Element, bool) {
	return p.param, p.param != nil
}

// Type is the translated field type. A nullability marker on the field, the getter or the
// constructor parameter makes it nullable.
func (p *Property) Type() (*typename.TypeName, error) {
	tn, err := p.class.env.tr.Translate(p.field.Type())
	if err != nil {
		return nil, fmt.Errorf("property %s.%s: %w", p.class.Name(), p.Name(), err)
	}
	if tn.Kind == typename.KindNamed && p.nullableMarked() {
		tn = tn.WithNullable(true)
	}
	return tn, nil
}

func (p *Property) nullableMarked() bool {
	tr := p.class.env.tr
	for _, el := range p.links() {
		for _, a := range el.Annotations() {
			if a != nil && tr.IsNullableMarker(a.Kind()) {
				return true
			}
		}
	}
	return false
}

// links lists the field, getter and parameter that are present, in lookup order.
func (p *Property) links() []element.Element {
	out := []element.Element{p.field}
	if p.getter != nil {
		out = append(out, p.getter)
	}
	if p.param != nil {
		out = append(out, p.param)
	}
	return out
}

// Annotation finds kind on the field, then the getter, then the constructor parameter.
func (p *Property) Annotation(kind element.AnnotationKind) (element.Annotation, bool) {
	for _, el := range p.links() {
		if a, ok := element.FindAnnotation(el.Annotations(), kind); ok {
			return a, true
		}
	}
	return nil, false
}

// TypeArgument returns the untranslated argument at i of a parameterized field type.
func (p *Property) TypeArgument(i int) (element.Type, bool) {
	a, ok := p.ReflectedType().TypeArgument(i)
	if !ok {
		return nil, false
	}
	return a.Type(), true
}

// TypeArgumentElement returns the declaration the argument at i resolves to.
func (p *Property) TypeArgumentElement(i int) (element.Element, bool) {
	a, ok := p.TypeArgument(i)
	if !ok {
		return nil, false
	}
	el := unwrapWildcard(a)
	if el == nil || el.Element() == nil {
		return nil, false
	}
	return el.Element(), true
}

// TypeArgumentName translates the argument at i.
func (p *Property) TypeArgumentName(i int) (*typename.TypeName, error) {
	a, ok := p.TypeArgument(i)
	if !ok {
		return nil, fmt.Errorf("%w %d in %s", ErrNoTypeArgument, i, p.field.Type())
	}
	return p.class.env.tr.Translate(a)
}

func (p *Property) String() string {
	return p.class.Name() + "." + p.Name()
}
