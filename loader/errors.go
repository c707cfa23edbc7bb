package loader

import (
	"golang.org/x/text/message"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
)

// Error is a malformed line in a scope file.
type Error struct {
	Pos  ast.Position
	Key  messages.Key
	Args []any
}

func newError(pos ast.Position, key messages.Key, args ...any) *Error {
	return &Error{Pos: pos, Key: key, Args: args}
}

// Error renders the diagnostic in English, prefixed with its position.
func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Localize(messages.Default())
}

// Message renders the diagnostic with p.
func (e *Error) Message(p *message.Printer) string {
	return messages.Sprintf(p, e.Key, e.Args...)
}

// Localize renders the diagnostic with p. The position is left to the caller,
// as for parse errors.
func (e *Error) Localize(p *message.Printer) string {
	return e.Message(p)
}

// GetPosition returns the position of the offending line.
func (e *Error) GetPosition() ast.Position {
	return e.Pos
}

func duplicateError(scope, first *ast.NamedScope) *Error {
	return newError(scope.Pos, messages.KeyDuplicateScope, scope.Name, first.Pos.String())
}
