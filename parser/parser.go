// Package parser implements the scope expression language.
//
// Scope expressions combine fragments with set operators:
//
//	file:src/*.go || file[app]:test/* && !file:*_gen.go
//
// The grammar handles operators, parentheses and the optional [module]
// restriction; the fragment bodies are parsed by extensions (see Extension),
// consulted in registry order. The built-in FileExtension handles "file"
// fragments.
package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
	"github.com/robinvdvleuten/filescope/telemetry"
)

// Parser parses a single scope expression from a token cursor.
type Parser struct {
	cursor   *Cursor
	registry *Registry
}

// Option configures a parse.
type Option func(*Parser)

// WithRegistry parses fragments with the given extensions instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// New creates a parser reading from c.
func New(c *Cursor, opts ...Option) *Parser {
	p := &Parser{cursor: c}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	return p
}

// Parse parses a scope expression from an io.Reader.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (ast.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scope expression: %w", err)
	}
	return ParseBytes(ctx, data, opts...)
}

// ParseString parses a scope expression from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (ast.Set, error) {
	return ParseBytes(ctx, []byte(s), opts...)
}

// ParseBytes parses a scope expression from bytes.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (ast.Set, error) {
	return ParseBytesWithFilename(ctx, "", data, opts...)
}

// ParseBytesWithFilename parses a scope expression and records filename in
// error positions.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte, opts ...Option) (ast.Set, error) {
	collector := telemetry.FromContext(ctx)

	timer := collector.Start("parser.lex")
	tokens := NewLexer(data, filename).ScanAll()
	timer.End()

	timer = collector.Start("parser.parse")
	defer timer.End()

	p := New(newCursor(data, filename, tokens), opts...)
	return p.ParseExpression()
}

// ParseExpression parses a complete expression; any tokens left over are an
// error.
func (p *Parser) ParseExpression() (ast.Set, error) {
	set, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	p.cursor.SkipWhitespace()
	if !p.cursor.AtEOF() {
		return nil, p.unexpected()
	}

	return set, nil
}

// parseUnion parses: Intersection { "||" Intersection }
func (p *Parser) parseUnion() (ast.Set, error) {
	first, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}

	sets := []ast.Set{first}
	for {
		p.cursor.SkipWhitespace()
		if p.cursor.Kind() != OROR {
			break
		}
		p.cursor.Advance()

		next, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		sets = append(sets, next)
	}

	return ast.NewUnion(sets...), nil
}

// parseIntersection parses: Term { "&&" Term }
func (p *Parser) parseIntersection() (ast.Set, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	sets := []ast.Set{first}
	for {
		p.cursor.SkipWhitespace()
		if p.cursor.Kind() != ANDAND {
			break
		}
		p.cursor.Advance()

		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		sets = append(sets, next)
	}

	return ast.NewIntersection(sets...), nil
}

// parseTerm parses: "!" Term | "(" Union ")" | Fragment
func (p *Parser) parseTerm() (ast.Set, error) {
	p.cursor.SkipWhitespace()

	switch p.cursor.Kind() {
	case EXCL:
		p.cursor.Advance()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Complement{Set: inner}, nil

	case LPAREN:
		p.cursor.Advance()
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		p.cursor.SkipWhitespace()
		if p.cursor.Kind() != RPAREN {
			return nil, errorAtCursor(p.cursor, messages.KeyRParenExpected)
		}
		p.cursor.Advance()
		return inner, nil

	default:
		return p.parseFragment()
	}
}

// parseFragment parses: Keyword [ "[" ModulePattern "]" ] ":" body
func (p *Parser) parseFragment() (ast.Set, error) {
	scope, ok := p.registry.Recognize(p.cursor)
	if !ok {
		return nil, errorAtCursor(p.cursor, messages.KeyScopeExpected)
	}

	var module string
	if p.cursor.Kind() == LBRACKET {
		p.cursor.Advance()

		var err error
		if module, err = p.parseModulePattern(); err != nil {
			return nil, err
		}

		if p.cursor.Kind() != RBRACKET {
			return nil, errorAtCursor(p.cursor, messages.KeyRBracketExpected)
		}
		p.cursor.Advance()
	}

	if p.cursor.Kind() != COLON {
		return nil, errorAtCursor(p.cursor, messages.KeyColonExpected)
	}
	p.cursor.Advance()

	set, ok, err := p.registry.Parse(p.cursor, scope, module)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorAtCursor(p.cursor, messages.KeyScopeExpected)
	}

	return set, nil
}

// parseModulePattern reads a module name pattern such as "core-*" up to the
// closing bracket. Surrounding whitespace is dropped.
func (p *Parser) parseModulePattern() (string, error) {
	var module strings.Builder
	wasIdent := false

loop:
	for {
		switch kind := p.cursor.Kind(); kind {
		case IDENT, INTEGER:
			if wasIdent {
				return "", p.unexpected()
			}
			module.WriteString(Text(p.cursor))
		case DOT, MINUS, ASTERISK, DIV:
			module.WriteString(Text(p.cursor))
		case WHITESPACE:
			module.WriteByte(' ')
		default:
			break loop
		}

		wasIdent = p.cursor.Kind().isIdentLike()
		p.cursor.Advance()
	}

	trimmed := strings.TrimSpace(module.String())
	if trimmed == "" {
		return "", errorAtCursor(p.cursor, messages.KeyModuleExpected)
	}
	return trimmed, nil
}

// unexpected reports the current token as out of place.
func (p *Parser) unexpected() *ParseError {
	text := Text(p.cursor)
	if p.cursor.AtEOF() {
		text = EOF.String()
	}
	return errorAtCursor(p.cursor, messages.KeyTokenUnexpected, text)
}
