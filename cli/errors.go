package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/robinvdvleuten/filescope/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	filename string
	source   []byte
	printer  *message.Printer
}

// NewErrorRenderer creates a renderer showing source for errors located in
// filename. Use an empty filename for a single expression.
func NewErrorRenderer(filename string, source []byte, p *message.Printer) *ErrorRenderer {
	return &ErrorRenderer{filename: filename, source: source, printer: p}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	text := errors.Message(err, r.printer)

	pos, ok := errors.Position(err)
	if !ok || r.source == nil || pos.Filename != r.filename {
		return errorStyle.Render(text)
	}

	var buf strings.Builder

	buf.WriteString(errorStyle.Render(text))
	buf.WriteString("\n\n")

	for _, line := range errors.ContextLines(r.source, pos) {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')

		if line.Caret > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", line.Caret-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(buf.String(), "\n")
}
