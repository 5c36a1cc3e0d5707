package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Litote/kgenerator/pkg/element/mem"
)

func TestClassSet(t *testing.T) {
	u := mem.New()
	env := NewEnv(u, nil)
	a := NewClass(env, u.Class("org.example.A"), false)
	b := NewClass(env, u.Class("org.example.B"), true)
	c := NewClass(env, u.Class("org.example.sub.C"), false)

	s := NewClassSet(a, b)
	assert.True(t, s.Add(c))
	assert.False(t, s.Add(NewClass(env, a.Element(), true)), "same declaration")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.IsNotEmpty())
	assert.True(t, s.Contains(b.Element()))

	got, ok := s.Get(a.Element())
	assert.True(t, ok)
	assert.Same(t, a, got)
	assert.False(t, got.Internal(), "first insertion wins")
	_, ok = s.Get(u.Class("org.example.Missing"))
	assert.False(t, ok)

	assert.Equal(t, "[org.example.A, org.example.B, org.example.sub.C]", s.String())

	internal := s.Filter(func(c *Class) bool { return c.Internal() })
	assert.Equal(t, 1, internal.Len())
	internal.Add(a)
	assert.Equal(t, 3, s.Len(), "filtered sets are independent")
	assert.Equal(t, 2, internal.Len())

	assert.False(t, NewClassSet().IsNotEmpty())
}

func TestClassSet_SnapshotIteration(t *testing.T) {
	u := mem.New()
	env := NewEnv(u, nil)
	s := NewClassSet(NewClass(env, u.Class("org.example.A"), false))

	list := s.List()
	var seen []string
	for c := range s.All() {
		seen = append(seen, c.Name())
		s.Add(NewClass(env, u.Class("org.example.Late"+c.Name()), false))
	}
	assert.Equal(t, []string{"A"}, seen)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, s.Len())

	count := 0
	s.ForEach(func(c *Class) {
		count++
		s.Add(NewClass(env, u.Class(c.QualifiedName()+"Copy"), false))
	})
	assert.Equal(t, 2, count)
	assert.Equal(t, 4, s.Len())
}
