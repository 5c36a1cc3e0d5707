package model

import (
	"github.com/Litote/kgenerator/pkg/element"
)

// Access is the strategy a generator must use to read a property.
type Access int

const (
	// AccessDirect reads the property by name: no getter, or a non-private one.
	AccessDirect Access = iota
	// AccessPrivate goes through reflection because the getter is private.
	AccessPrivate
)

func (a Access) String() string {
	if a == AccessPrivate {
		return "private"
	}
	return "direct"
}

// Class wraps one discovered class declaration. Two classes are equal when they wrap the
// same declaration.
type Class struct {
	el       element.Element
	internal bool
	env      *Env
}

// NewClass wraps el. internal records whether the class was declared internal by the
// annotation it was discovered through.
func NewClass(env *Env, el element.Element, internal bool) *Class {
	return &Class{el: el, internal: internal, env: env}
}

func (c *Class) Element() element.Element { return c.el }
func (c *Class) Internal() bool           { return c.internal }
func (c *Class) Name() string             { return c.el.Name() }
func (c *Class) Env() *Env                { return c.env }

// Namespace is read from the declaration on every call.
func (c *Class) Namespace() string {
	return c.el.Namespace()
}

func (c *Class) QualifiedName() string {
	return element.QualifiedName(c.el)
}

func (c *Class) String() string {
	return c.QualifiedName()
}

// Equal compares the wrapped declarations.
func (c *Class) Equal(o *Class) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.el == o.el
}

// Properties lists the fields of the class in declaration order, skipping those with an
// unsupported modifier, then keeping the ones selector accepts. A nil selector keeps all.
func (c *Class) Properties(selector func(*Property) bool) []*Property {
	ctor := c.constructor()
	var out []*Property
	for _, m := range c.el.Enclosed() {
		if m.Kind() != element.KindField || c.env.Unsupported(m.Modifiers()) {
			continue
		}
		p := &Property{
			class:  c,
			field:  m,
			getter: c.method(AccessorName(c.env.accessorPrefix, m.Name())),
			param:  parameter(ctor, m.Name()),
		}
		if selector == nil || selector(p) {
			out = append(out, p)
		}
	}
	return out
}

// Property returns the supported property called name.
func (c *Class) Property(name string) (*Property, bool) {
	ps := c.Properties(func(p *Property) bool { return p.Name() == name })
	if len(ps) == 0 {
		return nil, false
	}
	return ps[0], true
}

// Access decides how property name must be read. It is computed on every call.
func (c *Class) Access(name string) Access {
	g := c.method(AccessorName(c.env.accessorPrefix, name))
	if g != nil && g.Modifiers().Has(element.ModifierPrivate) {
		return AccessPrivate
	}
	return AccessDirect
}

// Reference calls private when property name must be read through its private getter and
// direct otherwise, and returns the result of the one it called.
func Reference[T any](c *Class, name string, private, direct func() T) T {
	if c.Access(name) == AccessPrivate {
		return private()
	}
	return direct()
}

func (c *Class) method(name string) element.Element {
	for _, m := range c.el.Enclosed() {
		if m.Kind() == element.KindMethod && m.Name() == name {
			return m
		}
	}
	return nil
}

func (c *Class) constructor() element.Element {
	for _, m := range c.el.Enclosed() {
		if m.Kind() == element.KindConstructor {
			return m
		}
	}
	return nil
}

func parameter(ctor element.Element, name string) element.Element {
	if ctor == nil {
		return nil
	}
	for _, p := range ctor.Params() {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
