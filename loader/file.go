package loader

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
	"github.com/robinvdvleuten/filescope/parser"
)

const includeKeyword = "include"

// parseFile parses the lines of a scope file.
func parseFile(ctx context.Context, filename string, data []byte, opts ...parser.Option) (*ast.File, error) {
	file := &ast.File{Filename: filename}
	seen := make(map[string]*ast.NamedScope)

	var comments []string
	offset := 0

	for i, raw := range bytes.Split(data, []byte("\n")) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineNo := i + 1
		lineStart := offset
		offset += len(raw) + 1
		line := bytes.TrimSuffix(raw, []byte("\r"))

		text := string(line)
		trimmed := strings.TrimSpace(text)
		indent := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
		pos := ast.Position{Filename: filename, Offset: lineStart + indent, Line: lineNo, Column: utf8.RuneCountInString(text[:indent]) + 1}

		switch {
		case trimmed == "":
			// Pending comments stay attached across blank lines.

		case strings.HasPrefix(trimmed, "#"):
			comments = append(comments, strings.TrimSpace(trimmed[1:]))

		case isInclude(trimmed):
			name := unquote(strings.TrimSpace(trimmed[len(includeKeyword):]))
			if name == "" {
				return nil, newError(pos, messages.KeyIncludeFilename)
			}
			file.Includes = append(file.Includes, &ast.Include{Filename: name, Pos: pos})
			comments = nil

		default:
			scope, err := parseDefinition(ctx, text, pos, lineStart, opts)
			if err != nil {
				return nil, err
			}
			if first, ok := seen[scope.Name]; ok {
				return nil, duplicateError(scope, first)
			}
			seen[scope.Name] = scope

			scope.Comments = comments
			comments = nil
			file.Scopes = append(file.Scopes, scope)
		}
	}

	return file, nil
}

// parseDefinition parses a "name = expression" line. pos locates the first
// non-blank character of the line, lineStart the line itself.
func parseDefinition(ctx context.Context, text string, pos ast.Position, lineStart int, opts []parser.Option) (*ast.NamedScope, error) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return nil, newError(pos, messages.KeyDefinitionExpected)
	}

	name := strings.TrimSpace(text[:eq])
	if !validName(name) {
		return nil, newError(pos, messages.KeyInvalidScopeName, name)
	}

	rest := text[eq+1:]
	exprStart := eq + 1 + len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
	source := strings.TrimSpace(rest)

	set, err := parser.ParseBytesWithFilename(ctx, pos.Filename, []byte(source), opts...)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return nil, reposition(perr, pos, lineStart, text[:exprStart])
		}
		return nil, err
	}

	return &ast.NamedScope{
		Name:   name,
		Source: source,
		Set:    set,
		Pos:    pos,
	}, nil
}

// reposition moves a parse error from expression coordinates to file
// coordinates. prefix is the part of the line before the expression. The
// expression-relative Offset is kept.
func reposition(perr *parser.ParseError, pos ast.Position, lineStart int, prefix string) *parser.ParseError {
	moved := *perr
	moved.Pos = ast.Position{
		Filename: pos.Filename,
		Offset:   lineStart + len(prefix) + perr.Pos.Offset,
		Line:     pos.Line,
		Column:   utf8.RuneCountInString(prefix) + perr.Pos.Column,
	}
	return &moved
}

func isInclude(line string) bool {
	if !strings.HasPrefix(line, includeKeyword) {
		return false
	}
	rest := line[len(includeKeyword):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r) && !strings.HasPrefix(strings.TrimSpace(rest), "=")
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// validName reports whether name consists of letters, digits, '_', '-' and
// '.' only.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
