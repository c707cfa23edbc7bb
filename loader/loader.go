// Package loader reads scope definition files.
//
// A scope file binds names to scope expressions, one per line:
//
//	# Production code
//	include shared.scopes
//	Sources = file:src/*.go
//	Tests   = file[app]:*_test.go || file:test/*
//
// Comment lines attach to the next definition. Expressions are parsed with
// package parser; syntax errors are reported at their position in the file.
//
// The loader supports two modes of operation:
//   - Simple mode: parses a single file, include lines are kept in File.Includes
//   - Follow mode: recursively loads all included files and merges their scopes
//
// When following includes, relative paths are resolved from the directory of
// the including file and files included more than once are loaded once.
//
//	ldr := loader.New(loader.WithFollowIncludes())
//	file, err := ldr.Load(ctx, "main.scopes")
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/parser"
	"github.com/robinvdvleuten/filescope/telemetry"
)

// Loader handles loading of scope files with optional include resolution.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFollowIncludes())
type Loader struct {
	// FollowIncludes determines whether to recursively load included files.
	// When false, only the specified file is parsed and File.Includes is kept.
	// When true, included files are loaded and their scopes merged.
	FollowIncludes bool

	// Registry holds the fragment extensions used to parse expressions.
	Registry *parser.Registry
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes configures the loader to recursively load and merge all
// included files. The returned File has Includes set to nil.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// WithRegistry parses expressions with the given extensions.
func WithRegistry(r *parser.Registry) Option {
	return func(l *Loader) {
		l.Registry = r
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Registry: parser.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads and parses a scope file.
func (l *Loader) Load(ctx context.Context, filename string) (*ast.File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses a scope file already read into memory. With
// FollowIncludes, includes are resolved relative to filename's directory.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.File, error) {
	if !l.FollowIncludes {
		return l.parse(ctx, filename, data)
	}

	state := &loaderState{
		loader:  l,
		visited: make(map[string]bool),
	}
	return state.loadRecursive(ctx, filename, data)
}

func (l *Loader) parse(ctx context.Context, filename string, data []byte) (*ast.File, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.load %s", filepath.Base(filename)))
	defer timer.End()

	return parseFile(ctx, filename, data, parser.WithRegistry(l.Registry))
}

// loaderState tracks state during recursive loading.
type loaderState struct {
	loader  *Loader
	visited map[string]bool // Absolute paths of files already loaded
}

// loadRecursive loads a file and all its includes. data is nil when the file
// still has to be read.
func (s *loaderState) loadRecursive(ctx context.Context, filename string, data []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	if s.visited[absPath] {
		return &ast.File{Filename: filename}, nil
	}
	s.visited[absPath] = true

	if data == nil {
		if data, err = os.ReadFile(filename); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
	}

	file, err := s.loader.parse(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(absPath)
	included := make([]*ast.File, 0, len(file.Includes))

	for _, inc := range file.Includes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		includePath := inc.Filename
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, includePath)
		}
		slog.DebugContext(ctx, "resolved include", "file", filename, "include", inc.Filename, "path", includePath)

		incFile, err := s.loadRecursive(ctx, includePath, nil)
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", filename, err)
		}
		included = append(included, incFile)
	}

	return mergeFiles(file, included...)
}

// mergeFiles combines a main file with the files it includes. Scopes of the
// main file come first; a name defined twice is an error reported at the
// second definition.
func mergeFiles(main *ast.File, included ...*ast.File) (*ast.File, error) {
	result := &ast.File{
		Filename: main.Filename,
		Scopes:   make([]*ast.NamedScope, 0, len(main.Scopes)),
	}

	seen := make(map[string]*ast.NamedScope)
	add := func(scopes []*ast.NamedScope) error {
		for _, scope := range scopes {
			if first, ok := seen[scope.Name]; ok {
				return duplicateError(scope, first)
			}
			seen[scope.Name] = scope
			result.Scopes = append(result.Scopes, scope)
		}
		return nil
	}

	if err := add(main.Scopes); err != nil {
		return nil, err
	}
	for _, inc := range included {
		if err := add(inc.Scopes); err != nil {
			return nil, err
		}
	}

	return result, nil
}
