package parser

import (
	"unicode/utf8"

	"golang.org/x/text/message"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
)

// ParseError represents a syntax error in a scope expression.
//
// Key and Args identify the diagnostic in the message catalog. Offset is the
// 1-based character offset of the offending token within the expression,
// suitable for display; Pos locates the same token for source rendering.
type ParseError struct {
	Key    messages.Key
	Args   []any
	Offset int
	Pos    ast.Position
}

// Error renders the diagnostic in English.
func (e *ParseError) Error() string {
	return e.Localize(messages.Default())
}

// Message renders the diagnostic without its position.
func (e *ParseError) Message(p *message.Printer) string {
	return messages.Sprintf(p, e.Key, e.Args...)
}

// Localize renders the diagnostic and its position with p.
func (e *ParseError) Localize(p *message.Printer) string {
	return messages.Sprintf(p, messages.KeyPositionError, e.Message(p), e.Offset)
}

// GetPosition returns the position of the offending token.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

// errorAtCursor builds a ParseError at the cursor's current token.
func errorAtCursor(c *Cursor, key messages.Key, args ...any) *ParseError {
	tok := c.Token()
	return &ParseError{
		Key:    key,
		Args:   args,
		Offset: utf8.RuneCount(c.source[:tok.Start]) + 1,
		Pos:    tokenPosition(tok, c.filename),
	}
}

// tokenPosition extracts position information from a token.
func tokenPosition(tok Token, filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}
