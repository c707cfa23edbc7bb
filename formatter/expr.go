package formatter

import (
	"strings"

	"github.com/robinvdvleuten/filescope/ast"
)

// Binding strength of each node kind, loosest first.
const (
	precUnion = iota + 1
	precIntersection
	precTerm
)

// FormatSet returns the canonical text of a scope expression.
func FormatSet(set ast.Set) string {
	var buf strings.Builder
	writeSet(&buf, set, 0)
	return buf.String()
}

func precedence(set ast.Set) int {
	switch set.(type) {
	case *ast.Union:
		return precUnion
	case *ast.Intersection:
		return precIntersection
	default:
		return precTerm
	}
}

// writeSet writes set, parenthesized when it binds looser than min.
func writeSet(buf *strings.Builder, set ast.Set, min int) {
	if precedence(set) < min {
		buf.WriteByte('(')
		writeSet(buf, set, 0)
		buf.WriteByte(')')
		return
	}

	switch s := set.(type) {
	case *ast.FilePattern:
		buf.WriteString("file")
		if s.HasModule() {
			buf.WriteByte('[')
			buf.WriteString(s.Module)
			buf.WriteByte(']')
		}
		buf.WriteByte(':')
		buf.WriteString(s.Pattern)

	case *ast.Union:
		writeOperands(buf, s.Sets, "||", precUnion)

	case *ast.Intersection:
		writeOperands(buf, s.Sets, "&&", precIntersection)

	case *ast.Complement:
		buf.WriteByte('!')
		writeSet(buf, s.Set, precTerm)
	}
}

func writeOperands(buf *strings.Builder, sets []ast.Set, op string, min int) {
	for i, operand := range sets {
		if i > 0 {
			if !endsInPattern(sets[i-1], min) && !strings.HasSuffix(buf.String(), " ") {
				buf.WriteByte(' ')
			}
			buf.WriteString(op)
			buf.WriteByte(' ')
		}
		writeSet(buf, operand, min)
	}
}

// endsInPattern reports whether the text of set, written at binding
// strength min, ends with a file pattern. A space written after it would
// become part of that pattern.
func endsInPattern(set ast.Set, min int) bool {
	if precedence(set) < min {
		return false
	}

	switch s := set.(type) {
	case *ast.FilePattern:
		return true
	case *ast.Union:
		return len(s.Sets) > 0 && endsInPattern(s.Sets[len(s.Sets)-1], precUnion)
	case *ast.Intersection:
		return len(s.Sets) > 0 && endsInPattern(s.Sets[len(s.Sets)-1], precIntersection)
	case *ast.Complement:
		return endsInPattern(s.Set, precTerm)
	}
	return false
}
