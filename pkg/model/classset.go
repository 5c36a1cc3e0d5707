package model

import (
	"iter"
	"strings"

	"github.com/Litote/kgenerator/pkg/element"
)

// ClassSet is an insertion-ordered set of classes keyed by declaration. It is not safe for
// concurrent mutation; iteration works on a snapshot.
type ClassSet struct {
	order []*Class
	index map[element.Element]*Class
}

func NewClassSet(classes ...*Class) *ClassSet {
	s := &ClassSet{index: make(map[element.Element]*Class, len(classes))}
	for _, c := range classes {
		s.Add(c)
	}
	return s
}

// Add inserts c unless its declaration is already present. The first insertion wins.
func (s *ClassSet) Add(c *Class) bool {
	if c == nil {
		return false
	}
	if _, ok := s.index[c.el]; ok {
		return false
	}
	s.index[c.el] = c
	s.order = append(s.order, c)
	return true
}

func (s *ClassSet) Contains(el element.Element) bool {
	_, ok := s.index[el]
	return ok
}

// Get returns the class wrapping el.
func (s *ClassSet) Get(el element.Element) (*Class, bool) {
	c, ok := s.index[el]
	return c, ok
}

func (s *ClassSet) Len() int         { return len(s.order) }
func (s *ClassSet) IsNotEmpty() bool { return len(s.order) > 0 }

// Filter returns a new set holding the classes pred accepts.
func (s *ClassSet) Filter(pred func(*Class) bool) *ClassSet {
	out := NewClassSet()
	for _, c := range s.order {
		if pred(c) {
			out.Add(c)
		}
	}
	return out
}

// List returns a copy of the classes in insertion order.
func (s *ClassSet) List() []*Class {
	return append([]*Class(nil), s.order...)
}

// ForEach calls fn on a snapshot of the set.
func (s *ClassSet) ForEach(fn func(*Class)) {
	for _, c := range s.List() {
		fn(c)
	}
}

// All iterates over a snapshot of the set taken when iteration starts.
func (s *ClassSet) All() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		for _, c := range s.List() {
			if !yield(c) {
				return
			}
		}
	}
}

func (s *ClassSet) String() string {
	names := make([]string, 0, len(s.order))
	for _, c := range s.order {
		names = append(names, c.QualifiedName())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
