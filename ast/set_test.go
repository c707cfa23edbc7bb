package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewUnionFlattens(t *testing.T) {
	a := &FilePattern{Pattern: "a"}
	b := &FilePattern{Pattern: "b"}
	c := &FilePattern{Pattern: "c"}

	got := NewUnion(NewUnion(a, b), c)
	assert.Equal(t, Set(&Union{Sets: []Set{a, b, c}}), got)
}

func TestNewIntersectionSingleOperand(t *testing.T) {
	a := &FilePattern{Pattern: "a"}
	assert.Equal(t, Set(a), NewIntersection(a))
}

func TestNewIntersectionKeepsNestedUnion(t *testing.T) {
	a := &FilePattern{Pattern: "a"}
	b := &FilePattern{Pattern: "b"}
	c := &FilePattern{Pattern: "c"}

	got := NewIntersection(NewUnion(a, b), c)
	assert.Equal(t, Set(&Intersection{Sets: []Set{&Union{Sets: []Set{a, b}}, c}}), got)
}

func TestPatternsInSourceOrder(t *testing.T) {
	a := &FilePattern{Pattern: "a"}
	b := &FilePattern{Module: "core", Pattern: "b"}
	c := &FilePattern{Pattern: "c"}

	set := NewUnion(a, NewIntersection(&Complement{Set: b}, c))
	got := Patterns(set)

	assert.Equal(t, []*FilePattern{a, b, c}, got)
	assert.True(t, got[1].HasModule())
	assert.False(t, got[0].HasModule())
}

func TestWalkSkipsChildren(t *testing.T) {
	inner := &FilePattern{Pattern: "hidden"}
	set := NewUnion(&FilePattern{Pattern: "a"}, &Complement{Set: inner})

	var visited []Set
	Walk(set, func(s Set) bool {
		visited = append(visited, s)
		_, isComplement := s.(*Complement)
		return !isComplement
	})

	assert.Equal(t, 3, len(visited))
	for _, v := range visited {
		assert.NotEqual(t, Set(inner), v)
	}
}

func TestFileLookup(t *testing.T) {
	f := &File{Scopes: []*NamedScope{{Name: "Sources"}, {Name: "Tests"}}}

	s, ok := f.Lookup("Tests")
	assert.True(t, ok)
	assert.Equal(t, "Tests", s.Name)

	_, ok = f.Lookup("Docs")
	assert.False(t, ok)
}
