package parser

import "github.com/robinvdvleuten/filescope/ast"

// Scope tags the fragment kind a keyword introduces. Extensions compare
// tags, never keyword text, to decide whether a recognized keyword is theirs.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeFile
)

var scopeKeywords = map[Scope]string{
	ScopeFile: "file",
}

// String returns the keyword that introduces the scope.
func (s Scope) String() string {
	if kw, ok := scopeKeywords[s]; ok {
		return kw
	}
	return "none"
}

// Extension is a fragment parser plugged into the scope grammar.
type Extension interface {
	// Recognize reports whether a fragment of this kind starts at the cursor.
	// On success the cursor is advanced past the keyword; otherwise it is
	// left untouched.
	Recognize(c *Cursor) (Scope, bool)

	// Parse parses the fragment body for a keyword previously returned by
	// Recognize. It reports ok=false, without touching the cursor, when
	// scope does not belong to this extension.
	Parse(c *Cursor, scope Scope, modulePattern string) (set ast.Set, ok bool, err error)
}

// Registry is an ordered list of extensions. The grammar consults them in
// order and the first one that applies wins.
type Registry struct {
	extensions []Extension
}

// NewRegistry creates a registry consulting extensions in the given order.
func NewRegistry(extensions ...Extension) *Registry {
	return &Registry{extensions: extensions}
}

// DefaultRegistry returns a registry with the built-in file pattern extension.
func DefaultRegistry() *Registry {
	return NewRegistry(FileExtension{})
}

// Register appends an extension to the registry.
func (r *Registry) Register(ext Extension) {
	r.extensions = append(r.extensions, ext)
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	return len(r.extensions)
}

// Recognize asks each extension in turn to recognize a keyword at the cursor.
func (r *Registry) Recognize(c *Cursor) (Scope, bool) {
	for _, ext := range r.extensions {
		if scope, ok := ext.Recognize(c); ok {
			return scope, true
		}
	}
	return ScopeNone, false
}

// Parse hands the fragment body to the first extension that owns scope.
func (r *Registry) Parse(c *Cursor, scope Scope, modulePattern string) (ast.Set, bool, error) {
	for _, ext := range r.extensions {
		set, ok, err := ext.Parse(c, scope, modulePattern)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return set, true, nil
		}
	}
	return nil, false, nil
}
