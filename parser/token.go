package parser

// TokenType represents the type of token scanned from a scope expression.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT      // file, src, Foo_1, $x
	INTEGER    // 42
	WHITESPACE // run of spaces, tabs or newlines

	// Pattern separators
	DIV      // /
	ASTERISK // *
	DOT      // .
	MINUS    // -

	// Delimiters
	COLON    // :
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )

	// Set operators
	OROR   // ||
	ANDAND // &&
	EXCL   // !
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:      "IDENT",
	INTEGER:    "INTEGER",
	WHITESPACE: "WHITESPACE",

	DIV:      "/",
	ASTERISK: "*",
	DOT:      ".",
	MINUS:    "-",

	COLON:    ":",
	LBRACKET: "[",
	RBRACKET: "]",
	LPAREN:   "(",
	RPAREN:   ")",

	OROR:   "||",
	ANDAND: "&&",
	EXCL:   "!",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// isIdentLike reports whether tokens of this type carry free-form source text
// that may not directly follow another such token inside a pattern.
func (t TokenType) isIdentLike() bool {
	return t == IDENT || t == INTEGER
}

// Token represents a lexical token with zero-copy semantics.
// The token text is not stored; Start and End are byte offsets into the
// source buffer the token was scanned from.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
