package parser

// Cursor is a forward-only position over the token stream of one source
// buffer. The grammar and every fragment parser share a single cursor;
// Advance is the only operation that moves it and there is no way back.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	source   []byte
	filename string
	tokens   []Token
	pos      int
}

// NewCursor lexes source and returns a cursor positioned at its first token.
func NewCursor(source []byte, filename string) *Cursor {
	return newCursor(source, filename, NewLexer(source, filename).ScanAll())
}

func newCursor(source []byte, filename string, tokens []Token) *Cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF, Start: len(source), End: len(source)})
	}
	return &Cursor{
		source:   source,
		filename: filename,
		tokens:   tokens,
	}
}

// Token returns the current token.
func (c *Cursor) Token() Token {
	return c.tokens[c.pos]
}

// Kind returns the type of the current token.
func (c *Cursor) Kind() TokenType {
	return c.tokens[c.pos].Type
}

// Start returns the byte offset where the current token begins.
func (c *Cursor) Start() int {
	return c.tokens[c.pos].Start
}

// End returns the byte offset just past the current token.
func (c *Cursor) End() int {
	return c.tokens[c.pos].End
}

// BufferEnd returns the length of the underlying source buffer.
func (c *Cursor) BufferEnd() int {
	return len(c.source)
}

// Source returns the underlying source buffer. Callers must not modify it.
func (c *Cursor) Source() []byte {
	return c.source
}

// Filename returns the name the source was read from, if any.
func (c *Cursor) Filename() string {
	return c.filename
}

// Index returns the position of the current token in the stream.
func (c *Cursor) Index() int {
	return c.pos
}

// AtEOF reports whether the cursor has reached the end of the stream.
func (c *Cursor) AtEOF() bool {
	return c.Kind() == EOF
}

// Advance moves to the next token. At EOF it stays put.
func (c *Cursor) Advance() {
	if !c.AtEOF() {
		c.pos++
	}
}

// SkipWhitespace advances past any WHITESPACE tokens.
func (c *Cursor) SkipWhitespace() {
	for c.Kind() == WHITESPACE {
		c.Advance()
	}
}

// Text returns the source text of the cursor's current token.
func Text(c *Cursor) string {
	return c.Token().String(c.source)
}
