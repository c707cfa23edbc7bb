package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/filescope/formatter"
	"github.com/robinvdvleuten/filescope/parser"
)

// ParseCmd parses a single scope expression and prints it back in canonical form.
type ParseCmd struct {
	Expression string `arg:"" help:"Scope expression, e.g. 'file[app]:src/*.go'."`
	Tree       bool   `help:"Dump the syntax tree instead of the canonical form."`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	return cmd.run(context.Background(), globals, ctx.Stdout, ctx.Stderr)
}

func (cmd *ParseCmd) run(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	ctx, report := startTelemetry(ctx, globals, "parse")
	defer report(stderr)

	set, err := parser.ParseString(ctx, cmd.Expression)
	if err != nil {
		renderer := NewErrorRenderer("", []byte(cmd.Expression), globals.Printer())
		_, _ = fmt.Fprintln(stderr, renderer.Render(err))
		return NewCommandError(exitFailure, err)
	}

	if cmd.Tree {
		repr.New(stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(set)
		return nil
	}

	_, err = fmt.Fprintln(stdout, formatter.FormatSet(set))
	return err
}
