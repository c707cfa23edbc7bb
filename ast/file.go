package ast

// File is a parsed scope definition file.
type File struct {
	Filename string
	Includes []*Include
	Scopes   []*NamedScope
}

// Include references another scope definition file.
type Include struct {
	Filename string
	Pos      Position
}

// NamedScope binds a name to a scope expression.
type NamedScope struct {
	Name     string
	Source   string   // Expression text as written
	Set      Set      // Parsed expression
	Comments []string // Comment lines preceding the definition, without the leading '#'
	Pos      Position
}

// Lookup returns the scope with the given name.
func (f *File) Lookup(name string) (*NamedScope, bool) {
	for _, s := range f.Scopes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
