package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/filescope/parser"
)

// TokensCmd shows the tokens of a scope expression.
type TokensCmd struct {
	Expression string `arg:"" help:"Scope expression to tokenize."`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context) error {
	return cmd.run(ctx.Stdout)
}

func (cmd *TokensCmd) run(stdout io.Writer) error {
	source := []byte(cmd.Expression)

	for _, token := range parser.NewLexer(source, "").ScanAll() {
		if token.Type == parser.EOF {
			continue
		}

		// Format: TYPE line:col "content"
		if _, err := fmt.Fprintf(stdout, "%-10s %d:%d    %q\n",
			token.Type.String(),
			token.Line,
			token.Column,
			token.String(source)); err != nil {
			return err
		}
	}

	return nil
}
