package parser

// Lexer implements a zero-copy lexer for scope expressions.
//
// Unlike most lexers, whitespace is not skipped: file patterns may contain
// spaces, so whitespace runs are emitted as WHITESPACE tokens and it is up to
// the grammar to ignore them where they carry no meaning.

// Lexer tokenizes scope expression source.
type Lexer struct {
	source   []byte  // Source buffer
	filename string  // Filename for error reporting
	pos      int     // Current byte position
	line     int     // Current line (1-indexed)
	column   int     // Current column (1-indexed)
	tokens   []Token // Token buffer
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	// Scope expressions are short; roughly one token per three bytes.
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
		tokens:   make([]Token, 0, len(source)/3+8),
	}
}

// ScanAll lexes the entire source and returns all tokens, terminated by EOF.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.tokens = append(l.tokens, l.scanToken())
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	ch := l.advance()

	switch {
	case isSpace(ch):
		for isSpace(l.peek()) {
			l.advance()
		}
		return Token{WHITESPACE, start, l.pos, startLine, startCol}

	case isDigit(ch):
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.advance()
		}
		return Token{INTEGER, start, l.pos, startLine, startCol}

	case isIdentStart(ch):
		for l.pos < len(l.source) && isIdentPart(l.source[l.pos]) {
			l.advance()
		}
		return Token{IDENT, start, l.pos, startLine, startCol}

	case ch == '/':
		return Token{DIV, start, l.pos, startLine, startCol}
	case ch == '*':
		return Token{ASTERISK, start, l.pos, startLine, startCol}
	case ch == '.':
		return Token{DOT, start, l.pos, startLine, startCol}
	case ch == '-':
		return Token{MINUS, start, l.pos, startLine, startCol}
	case ch == ':':
		return Token{COLON, start, l.pos, startLine, startCol}
	case ch == '[':
		return Token{LBRACKET, start, l.pos, startLine, startCol}
	case ch == ']':
		return Token{RBRACKET, start, l.pos, startLine, startCol}
	case ch == '(':
		return Token{LPAREN, start, l.pos, startLine, startCol}
	case ch == ')':
		return Token{RPAREN, start, l.pos, startLine, startCol}
	case ch == '!':
		return Token{EXCL, start, l.pos, startLine, startCol}

	// || and &&; a single '|' or '&' is illegal
	case ch == '|':
		if l.peek() == '|' {
			l.advance()
			return Token{OROR, start, l.pos, startLine, startCol}
		}
		return Token{ILLEGAL, start, l.pos, startLine, startCol}
	case ch == '&':
		if l.peek() == '&' {
			l.advance()
			return Token{ANDAND, start, l.pos, startLine, startCol}
		}
		return Token{ILLEGAL, start, l.pos, startLine, startCol}

	default:
		return Token{ILLEGAL, start, l.pos, startLine, startCol}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart accepts ASCII letters, '_', '$' and any UTF-8 byte so that
// non-ASCII file names lex as identifiers.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		ch == '_' || ch == '$' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// Helper methods

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch&0xC0 != 0x80:
		// Continuation bytes belong to the rune already counted.
		l.column++
	}
	return ch
}
