package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/filescope/formatter"
	"github.com/robinvdvleuten/filescope/loader"
)

// FmtCmd rewrites a scope file in canonical layout.
type FmtCmd struct {
	File      FileOrStdin `help:"Scope file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	NameWidth int         `help:"Width scope names are padded to (auto if 0)." default:"0"`
	Write     bool        `short:"w" help:"Write the result back to the file."`
	Yes       bool        `short:"y" help:"Do not ask before overwriting the file."`
}

func (cmd *FmtCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(os.Stdin); err != nil {
		return err
	}
	return cmd.run(context.Background(), globals, ctx.Stdout, ctx.Stderr, promptYesNo)
}

func (cmd *FmtCmd) run(ctx context.Context, globals *Globals, stdout, stderr io.Writer, confirm func(string) (bool, error)) error {
	ctx, report := startTelemetry(ctx, globals, "fmt")
	defer report(stderr)

	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	file, err := cmd.File.Load(ctx, loader.New())
	if err != nil {
		source, _ := cmd.File.GetSourceContent()
		renderer := NewErrorRenderer(cmd.File.GetAbsoluteFilename(), source, globals.Printer())
		_, _ = fmt.Fprintln(stderr, renderer.Render(err))
		_, _ = fmt.Fprintln(stderr)
		printError(stderr, "parse error")
		return NewCommandError(exitFailure, err)
	}

	var opts []formatter.Option
	if cmd.NameWidth > 0 {
		opts = append(opts, formatter.WithNameWidth(cmd.NameWidth))
	}

	var buf bytes.Buffer
	if err := formatter.New(opts...).Format(ctx, file, &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	original, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.Equal(original, buf.Bytes()) {
		printSuccess(stdout, fmt.Sprintf("%s already formatted", pathStyle.Render(cmd.File.Filename)))
		return nil
	}

	if !cmd.Yes {
		ok, err := confirm(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !ok {
			printInfof(stdout, "left %s unchanged", pathStyle.Render(cmd.File.Filename))
			return nil
		}
	}

	if err := os.WriteFile(cmd.File.Filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.File.Filename, err)
	}
	printSuccess(stdout, fmt.Sprintf("formatted %s", pathStyle.Render(cmd.File.Filename)))
	return nil
}
