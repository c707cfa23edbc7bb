// Package ast declares the types used to represent parsed scope expressions
// and scope definition files.
//
// A scope expression combines file pattern fragments with the set operators
// of the scope language:
//
//	file:src/*.go || file[app]:test/* && !file:*_gen.go
//
// The parser package builds these trees; the formatter package prints them
// back in canonical form.
package ast

// Set is a node of a parsed scope expression.
type Set interface {
	set()
}

// FilePattern is a file pattern fragment, e.g. file[app]:src/*.java.
//
// Pattern is the literal pattern string produced by the fragment parser.
// Whitespace inside the pattern is kept (normalized to single spaces).
// Module is empty when the fragment carries no [module] restriction.
type FilePattern struct {
	Module  string
	Pattern string
	Span    Span
}

// Union matches everything matched by any of its operands (a || b).
type Union struct {
	Sets []Set
}

// Intersection matches what all of its operands match (a && b).
type Intersection struct {
	Sets []Set
}

// Complement matches everything its operand does not (!a).
type Complement struct {
	Set Set
}

func (*FilePattern) set()  {}
func (*Union) set()        {}
func (*Intersection) set() {}
func (*Complement) set()   {}

var (
	_ Set = &FilePattern{}
	_ Set = &Union{}
	_ Set = &Intersection{}
	_ Set = &Complement{}
)

// HasModule reports whether the fragment is restricted to a module.
func (f *FilePattern) HasModule() bool {
	return f.Module != ""
}

// NewUnion returns the union of sets, flattening nested unions.
// A single operand is returned as is.
func NewUnion(sets ...Set) Set {
	return flatten(sets, func(s Set) ([]Set, bool) {
		u, ok := s.(*Union)
		if !ok {
			return nil, false
		}
		return u.Sets, true
	}, func(sets []Set) Set { return &Union{Sets: sets} })
}

// NewIntersection returns the intersection of sets, flattening nested
// intersections. A single operand is returned as is.
func NewIntersection(sets ...Set) Set {
	return flatten(sets, func(s Set) ([]Set, bool) {
		i, ok := s.(*Intersection)
		if !ok {
			return nil, false
		}
		return i.Sets, true
	}, func(sets []Set) Set { return &Intersection{Sets: sets} })
}

func flatten(sets []Set, unwrap func(Set) ([]Set, bool), wrap func([]Set) Set) Set {
	if len(sets) == 1 {
		return sets[0]
	}

	out := make([]Set, 0, len(sets))
	for _, s := range sets {
		if inner, ok := unwrap(s); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, s)
	}
	return wrap(out)
}
