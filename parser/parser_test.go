package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/messages"
	"github.com/robinvdvleuten/filescope/telemetry"
)

func fp(module, pattern string) *ast.FilePattern {
	return &ast.FilePattern{Module: module, Pattern: pattern}
}

// stripSpans zeroes spans so trees can be compared structurally.
func stripSpans(s ast.Set) ast.Set {
	ast.Walk(s, func(n ast.Set) bool {
		if f, ok := n.(*ast.FilePattern); ok {
			f.Span = ast.Span{}
		}
		return true
	})
	return s
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Set
	}{
		{
			name:  "single fragment",
			input: "file:a/b*.java",
			want:  fp("", "a/b*.java"),
		},
		{
			name:  "module restriction",
			input: "file[core-*]:src/*",
			want:  fp("core-*", "src/*"),
		},
		{
			name:  "module restriction trims whitespace",
			input: "file[ core ]:src/*",
			want:  fp("core", "src/*"),
		},
		{
			name:  "union",
			input: "file:*.go||file:*.mod",
			want:  &ast.Union{Sets: []ast.Set{fp("", "*.go"), fp("", "*.mod")}},
		},
		{
			name:  "whitespace before operator belongs to the pattern",
			input: "file:*.go || file:*.mod",
			want:  &ast.Union{Sets: []ast.Set{fp("", "*.go "), fp("", "*.mod")}},
		},
		{
			name:  "intersection binds tighter than union",
			input: "file:a||file:b&&file:c",
			want: &ast.Union{Sets: []ast.Set{
				fp("", "a"),
				&ast.Intersection{Sets: []ast.Set{fp("", "b"), fp("", "c")}},
			}},
		},
		{
			name:  "parentheses",
			input: "(file:a||file:b)&&file:c",
			want: &ast.Intersection{Sets: []ast.Set{
				&ast.Union{Sets: []ast.Set{fp("", "a"), fp("", "b")}},
				fp("", "c"),
			}},
		},
		{
			name:  "complement",
			input: "!file:*_gen.go",
			want:  &ast.Complement{Set: fp("", "*_gen.go")},
		},
		{
			name:  "double complement",
			input: "!!file:x",
			want:  &ast.Complement{Set: &ast.Complement{Set: fp("", "x")}},
		},
		{
			name:  "leading and trailing whitespace",
			input: "  (file:x)  ",
			want:  fp("", "x"),
		},
		{
			name:  "flattened union",
			input: "file:a||(file:b||file:c)",
			want:  &ast.Union{Sets: []ast.Set{fp("", "a"), fp("", "b"), fp("", "c")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(context.Background(), tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, stripSpans(got))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		key    messages.Key
		args   []any
		offset int
	}{
		{"empty input", "", messages.KeyScopeExpected, nil, 1},
		{"unknown keyword", "src:*.java", messages.KeyScopeExpected, nil, 1},
		{"keyword without delimiter", "file *.java", messages.KeyScopeExpected, nil, 1},
		{"empty pattern", "file:", messages.KeyPatternExpected, nil, 6},
		{"empty pattern before operator", "file:||file:a", messages.KeyPatternExpected, nil, 6},
		{"adjacent identifiers", "file:1a", messages.KeyTokenUnexpected, []any{"a"}, 7},
		{"adjacent identifiers after multi-byte rune", "file:é/1a", messages.KeyTokenUnexpected, []any{"a"}, 9},
		{"illegal character after multi-byte rune", "file:ü @", messages.KeyTokenUnexpected, []any{"@"}, 8},
		{"missing colon after module", "file[core]x", messages.KeyColonExpected, nil, 11},
		{"unterminated module", "file[core:x", messages.KeyRBracketExpected, nil, 10},
		{"empty module", "file[]:x", messages.KeyModuleExpected, nil, 6},
		{"missing paren", "(file:a", messages.KeyRParenExpected, nil, 8},
		{"dangling operator", "file:a||", messages.KeyScopeExpected, nil, 9},
		{"illegal character", "file:a @", messages.KeyTokenUnexpected, []any{"@"}, 8},
		{"single pipe", "file:a|file:b", messages.KeyTokenUnexpected, []any{"|"}, 7},
		{"stray closing paren", "file:a)", messages.KeyTokenUnexpected, []any{")"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseString(context.Background(), tt.input)
			assert.Zero(t, set)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr), "expected *ParseError, got %v", err)
			assert.Equal(t, tt.key, perr.Key)
			assert.Equal(t, tt.args, perr.Args)
			assert.Equal(t, tt.offset, perr.Offset)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseBytesWithFilename(context.Background(), "scopes.txt", []byte("file:a ||\n  file:"))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, ast.Position{Filename: "scopes.txt", Offset: 17, Line: 2, Column: 8}, perr.GetPosition())
	assert.Equal(t, "Pattern expected at position 18", perr.Error())
}

func TestParseFromReader(t *testing.T) {
	set, err := Parse(context.Background(), strings.NewReader("file:*.go"))
	assert.NoError(t, err)
	assert.Equal(t, ast.Set(fp("", "*.go")), stripSpans(set))
}

func TestParseRecordsSpans(t *testing.T) {
	src := "file:a || file[m]:b/c"
	set, err := ParseString(context.Background(), src)
	assert.NoError(t, err)

	patterns := ast.Patterns(set)
	assert.Equal(t, 2, len(patterns))
	assert.Equal(t, "a ", patterns[0].Span.Text([]byte(src)))
	assert.Equal(t, "b/c", patterns[1].Span.Text([]byte(src)))
}

func TestParseRecordsTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	_, err := ParseString(ctx, "file:*.go")
	assert.NoError(t, err)

	var names []string
	for _, timing := range collector.Timings() {
		names = append(names, timing.Name)
	}
	assert.Equal(t, []string{"parser.lex", "parser.parse"}, names)
}

// dirExtension recognizes "dir:" fragments and claims a pattern of one
// identifier.
type dirExtension struct{}

const scopeDir Scope = 100

func (dirExtension) Recognize(c *Cursor) (Scope, bool) {
	if c.Kind() != IDENT || Text(c) != "dir" {
		return ScopeNone, false
	}
	c.Advance()
	return scopeDir, true
}

func (dirExtension) Parse(c *Cursor, scope Scope, module string) (ast.Set, bool, error) {
	if scope != scopeDir {
		return nil, false, nil
	}
	text := Text(c)
	c.Advance()
	return &ast.FilePattern{Module: module, Pattern: text + "/*"}, true, nil
}

func TestRegistryConsultsExtensionsInOrder(t *testing.T) {
	registry := NewRegistry(FileExtension{}, dirExtension{})
	assert.Equal(t, 2, registry.Len())

	got, err := ParseString(context.Background(), "dir:src||file:*.go", WithRegistry(registry))
	assert.NoError(t, err)
	assert.Equal(t, ast.Set(&ast.Union{Sets: []ast.Set{fp("", "src/*"), fp("", "*.go")}}), stripSpans(got))
}

func TestRegistryWithoutExtension(t *testing.T) {
	_, err := ParseString(context.Background(), "dir:src")

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, messages.KeyScopeExpected, perr.Key)
}

func TestRegistryRegister(t *testing.T) {
	registry := DefaultRegistry()
	registry.Register(dirExtension{})

	c := NewCursor([]byte("dir:x"), "")
	scope, ok := registry.Recognize(c)
	assert.True(t, ok)
	assert.Equal(t, scopeDir, scope)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "file", ScopeFile.String())
	assert.Equal(t, "none", ScopeNone.String())
}
