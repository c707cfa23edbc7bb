// Package errors renders scope parsing and loading errors.
//
// It separates error presentation from the packages that produce errors, so
// the same error can be rendered for a terminal or for machine consumption.
// The package defines a Formatter interface and two implementations:
//   - TextFormatter: a message line followed by the offending source line
//     and a caret under the error column
//   - JSONFormatter: structured JSON for editors and scripts
//
// Parse and scope file errors are localized with a golang.org/x/text message
// printer.
package errors

import (
	"bytes"
	stdErrors "errors"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"github.com/robinvdvleuten/filescope/ast"
	"github.com/robinvdvleuten/filescope/loader"
	"github.com/robinvdvleuten/filescope/messages"
	"github.com/robinvdvleuten/filescope/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that know where they occurred.
type positioned interface {
	GetPosition() ast.Position
	Error() string
}

// localized is implemented by errors with a catalog message.
type localized interface {
	positioned
	Localize(p *message.Printer) string
}

// Message returns the text of err rendered with p. Parse and scope file
// errors are prefixed with their file position when they carry a filename.
func Message(err error, p *message.Printer) string {
	if p == nil {
		p = messages.Default()
	}

	var lerr localized
	if stdErrors.As(err, &lerr) {
		text := lerr.Localize(p)
		if pos := lerr.GetPosition(); pos.Filename != "" {
			return fmt.Sprintf("%s: %s", pos, text)
		}
		return text
	}

	return err.Error()
}

// Position returns the position recorded in err or any error it wraps.
func Position(err error) (ast.Position, bool) {
	var perr *parser.ParseError
	if stdErrors.As(err, &perr) {
		return perr.GetPosition(), true
	}

	var pe positioned
	if stdErrors.As(err, &pe) {
		return pe.GetPosition(), true
	}

	return ast.Position{}, false
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	printer        *message.Printer
	sourceFilename string
	sourceContent  []byte // Optional source content for error context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown under errors located in
// filename. An empty filename matches errors without one, such as errors in
// a single expression.
func WithSource(filename string, source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceFilename = filename
		tf.sourceContent = source
	}
}

// WithPrinter localizes parse and scope file errors with p.
func WithPrinter(p *message.Printer) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.printer = p
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{printer: messages.Default()}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	text := Message(err, tf.printer)

	pos, ok := Position(err)
	if !ok || tf.sourceContent == nil || pos.Filename != tf.sourceFilename {
		return text
	}

	return formatWithSourceContext(pos, text, tf.sourceContent)
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext shows the message followed by the source line of
// pos, the line before it, and a caret under the error column.
func formatWithSourceContext(pos ast.Position, message string, sourceContent []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	for _, line := range ContextLines(sourceContent, pos) {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')

		if line.Caret > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", line.Caret-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// SourceLine is a line of source shown around an error. Caret is the
// 1-based column to mark, or 0.
type SourceLine struct {
	Text  string
	Caret int
}

// ContextLines returns the line of pos and the one before it.
func ContextLines(source []byte, pos ast.Position) []SourceLine {
	lines := strings.Split(string(source), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return nil
	}

	start := max(pos.Line-2, 0)
	out := make([]SourceLine, 0, 2)
	for i := start; i < pos.Line; i++ {
		line := SourceLine{Text: strings.TrimSuffix(lines[i], "\r")}
		if i == pos.Line-1 {
			line.Caret = max(pos.Column, 1)
		}
		out = append(out, line)
	}
	return out
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct {
	printer *message.Printer
}

// NewJSONFormatter creates a new JSON formatter. A nil printer renders
// messages in English.
func NewJSONFormatter(p *message.Printer) *JSONFormatter {
	if p == nil {
		p = messages.Default()
	}
	return &JSONFormatter{printer: p}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Key      string        `json:"key,omitempty"`
	Message  string        `json:"message"`
	Offset   int           `json:"offset,omitempty"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var perr *parser.ParseError
	if stdErrors.As(err, &perr) {
		errJSON.Type = fmt.Sprintf("%T", perr)
		errJSON.Key = string(perr.Key)
		errJSON.Message = perr.Message(jf.printer)
		errJSON.Offset = perr.Offset
	}

	var lerr *loader.Error
	if stdErrors.As(err, &lerr) {
		errJSON.Type = fmt.Sprintf("%T", lerr)
		errJSON.Key = string(lerr.Key)
		errJSON.Message = lerr.Message(jf.printer)
	}

	if pos, ok := Position(err); ok {
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}

var (
	_ Formatter = (*TextFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
)
