// Package typename describes types in the Kotlin vocabulary emitted by generators.
package typename

import (
	"strings"
)

// Well-known Kotlin names.
const (
	Any       = "kotlin.Any"
	Array     = "kotlin.Array"
	Byte      = "kotlin.Byte"
	ByteArray = "kotlin.ByteArray"
	String    = "kotlin.String"
)

// Kind distinguishes named types from wildcard projections.
type Kind int

const (
	KindNamed Kind = iota
	KindWildcard
)

// Variance of a wildcard projection.
type Variance int

const (
	Invariant Variance = iota
	// Producer is an `out` projection.
	Producer
	// Consumer is an `in` projection.
	Consumer
)

func (v Variance) String() string {
	switch v {
	case Producer:
		return "producer"
	case Consumer:
		return "consumer"
	default:
		return "invariant"
	}
}

// TypeName is an immutable target type descriptor. Named types carry a qualified Name and
// their translated Args; wildcards carry a Variance and a Bound. Nullable is an overlay and
// never part of Name.
type TypeName struct {
	Kind     Kind
	Name     string
	Args     []*TypeName
	Variance Variance
	Bound    *TypeName
	Nullable bool
}

// Class returns a named type without arguments.
func Class(name string) *TypeName {
	return &TypeName{Kind: KindNamed, Name: name}
}

// Parameterized returns raw applied to args.
func Parameterized(raw string, args ...*TypeName) *TypeName {
	return &TypeName{Kind: KindNamed, Name: raw, Args: args}
}

// ProducerOf returns `out bound`.
func ProducerOf(bound *TypeName) *TypeName {
	return &TypeName{Kind: KindWildcard, Variance: Producer, Bound: bound}
}

// ConsumerOf returns `in bound`.
func ConsumerOf(bound *TypeName) *TypeName {
	return &TypeName{Kind: KindWildcard, Variance: Consumer, Bound: bound}
}

// WithNullable returns a copy of t with the nullability overlay set to nullable.
func (t *TypeName) WithNullable(nullable bool) *TypeName {
	if t.Nullable == nullable {
		return t
	}
	c := *t
	c.Nullable = nullable
	return &c
}

// IsWildcard reports whether t is a projection.
func (t *TypeName) IsWildcard() bool {
	return t.Kind == KindWildcard
}

// SimpleName is the last segment of Name.
func (t *TypeName) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// PackageName is everything before the last segment of Name.
func (t *TypeName) PackageName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[:i]
	}
	return ""
}

// Arg returns the translated argument at i.
func (t *TypeName) Arg(i int) (*TypeName, bool) {
	if i < 0 || i >= len(t.Args) {
		return nil, false
	}
	return t.Args[i], true
}

// String renders t in Kotlin syntax.
func (t *TypeName) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeName) write(b *strings.Builder) {
	if t.Kind == KindWildcard {
		if t.Variance == Producer && t.Bound != nil && t.Bound.Nullable && t.Bound.Name == Any && len(t.Bound.Args) == 0 {
			b.WriteString("*")
			return
		}
		switch t.Variance {
		case Producer:
			b.WriteString("out ")
		case Consumer:
			b.WriteString("in ")
		}
		if t.Bound != nil {
			t.Bound.write(b)
		}
		return
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		b.WriteString(">")
	}
	if t.Nullable {
		b.WriteString("?")
	}
}

// Equal reports structural equality.
func (t *TypeName) Equal(o *TypeName) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name || t.Variance != o.Variance || t.Nullable != o.Nullable {
		return false
	}
	if !t.Bound.Equal(o.Bound) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
