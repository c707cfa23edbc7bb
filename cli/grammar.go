package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/filescope/grammar"
)

// GrammarCmd prints the EBNF grammar of scope expressions.
type GrammarCmd struct {
	Productions bool `help:"List production names only."`
}

// Run executes the grammar command.
func (cmd *GrammarCmd) Run(ctx *kong.Context) error {
	return cmd.run(ctx.Stdout)
}

func (cmd *GrammarCmd) run(stdout io.Writer) error {
	g, err := grammar.Load()
	if err != nil {
		return err
	}

	if cmd.Productions {
		for _, name := range grammar.Productions(g) {
			if _, err := fmt.Fprintln(stdout, name); err != nil {
				return err
			}
		}
		return nil
	}

	_, err = io.WriteString(stdout, grammar.Source())
	return err
}
