package parser

import (
	"strings"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
)

// FileExtension parses file pattern fragments:
//
//	file:src/*.java
//	file[core]:test/**/*Test.java
type FileExtension struct{}

var _ Extension = FileExtension{}

// Recognize matches the "file" keyword when it is immediately followed by
// ':' or '['. The one-byte lookahead keeps a plain identifier named "file"
// elsewhere in the grammar from being taken for the keyword.
func (FileExtension) Recognize(c *Cursor) (Scope, bool) {
	if c.Kind() != IDENT || Text(c) != ScopeFile.String() {
		return ScopeNone, false
	}

	end := c.End()
	if end >= c.BufferEnd() {
		return ScopeNone, false
	}
	if next := c.Source()[end]; next != ':' && next != '[' {
		return ScopeNone, false
	}

	c.Advance()
	return ScopeFile, true
}

// Parse extracts the file pattern following the fragment delimiter.
func (FileExtension) Parse(c *Cursor, scope Scope, modulePattern string) (ast.Set, bool, error) {
	if scope != ScopeFile {
		return nil, false, nil
	}

	start := c.Start()
	pattern, err := ParseFilePattern(c)
	if err != nil {
		return nil, false, err
	}

	return &ast.FilePattern{
		Module:  modulePattern,
		Pattern: pattern,
		Span:    ast.Span{Start: start, End: c.Start()},
	}, true, nil
}

// ParseFilePattern consumes identifiers, integers, '/', '*', '.', '-' and
// whitespace and returns them as a literal pattern string. Whitespace runs
// collapse to a single space. It stops, without consuming, at the first token
// of any other kind.
//
// Two identifier-like tokens in a row are an error, as is a pattern with no
// characters at all.
func ParseFilePattern(c *Cursor) (string, error) {
	var pattern strings.Builder
	wasIdent := false

	for {
		switch kind := c.Kind(); kind {
		case DIV:
			pattern.WriteByte('/')
		case ASTERISK:
			pattern.WriteByte('*')
		case DOT:
			pattern.WriteByte('.')
		case MINUS:
			pattern.WriteByte('-')
		case WHITESPACE:
			pattern.WriteByte(' ')
		case IDENT, INTEGER:
			text := Text(c)
			if wasIdent {
				return "", errorAtCursor(c, messages.KeyTokenUnexpected, text)
			}
			pattern.WriteString(text)
		default:
			if pattern.Len() == 0 {
				return "", errorAtCursor(c, messages.KeyPatternExpected)
			}
			return pattern.String(), nil
		}

		wasIdent = c.Kind().isIdentLike()
		c.Advance()
	}
}
