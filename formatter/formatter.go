// Package formatter prints scope expressions and scope definition files in
// canonical form.
//
// Expressions are printed with the fewest parentheses precedence allows.
// Whitespace inside a file pattern is part of the pattern, so the formatter
// never inserts a space between a pattern and a following operator; it only
// adds one after the operator, where the grammar ignores it. Parsing the
// output of FormatSet yields the same tree.
package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/telemetry"
)

// Formatter handles formatting of scope definition files.
type Formatter struct {
	// NameWidth is the width scope names are padded to before the '='.
	// If 0, the widest name in the file is used.
	NameWidth int

	// PreserveComments controls whether comment lines are written.
	// Default: true
	PreserveComments bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithNameWidth pads scope names to width columns. Longer names are not
// truncated.
func WithNameWidth(width int) Option {
	return func(f *Formatter) {
		f.NameWidth = width
	}
}

// WithPreserveComments enables or disables comment preservation.
func WithPreserveComments(preserve bool) Option {
	return func(f *Formatter) {
		f.PreserveComments = preserve
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		PreserveComments: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format writes file to w.
func (f *Formatter) Format(ctx context.Context, file *ast.File, w io.Writer) error {
	timer := telemetry.FromContext(ctx).Start("formatter.format")
	defer timer.End()

	width := f.nameWidth(file)

	var buf strings.Builder
	buf.Grow(len(file.Scopes)*64 + len(file.Includes)*32)

	for _, inc := range file.Includes {
		buf.WriteString("include ")
		buf.WriteString(inc.Filename)
		buf.WriteByte('\n')
	}

	for i, scope := range file.Scopes {
		hasComments := f.PreserveComments && len(scope.Comments) > 0

		// Separate commented blocks, and the first scope from the includes.
		if (i == 0 && len(file.Includes) > 0) || (i > 0 && hasComments) {
			buf.WriteByte('\n')
		}

		if hasComments {
			for _, c := range scope.Comments {
				writeComment(&buf, c)
			}
		}

		buf.WriteString(runewidth.FillRight(scope.Name, width))
		buf.WriteString(" = ")
		buf.WriteString(strings.TrimRight(FormatSet(scope.Set), " "))
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func (f *Formatter) nameWidth(file *ast.File) int {
	if f.NameWidth > 0 {
		return f.NameWidth
	}

	width := 0
	for _, scope := range file.Scopes {
		width = max(width, runewidth.StringWidth(scope.Name))
	}
	return width
}

func writeComment(buf *strings.Builder, text string) {
	if text == "" {
		buf.WriteString("#\n")
		return
	}
	buf.WriteString("# ")
	buf.WriteString(text)
	buf.WriteByte('\n')
}
