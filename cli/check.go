package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/filescope/errors"
	"github.com/robinvdvleuten/filescope/loader"
)

// CheckCmd validates a scope file and reports every problem with its location.
type CheckCmd struct {
	File           FileOrStdin `help:"Scope file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format         string      `help:"Error output format." enum:"text,json" default:"text"`
	FollowIncludes bool        `help:"Load included scope files as well."`
	Watch          bool        `help:"Check again whenever the file changes."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(os.Stdin); err != nil {
		return err
	}

	if cmd.Watch {
		if cmd.File.IsStdin() {
			return fmt.Errorf("--watch needs a file, not stdin")
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return cmd.watch(runCtx, globals, ctx.Stdout, ctx.Stderr)
	}

	return cmd.check(context.Background(), globals, ctx.Stdout, ctx.Stderr)
}

// check loads the file once and reports the outcome. A failed check returns
// a CommandError after the errors have been written.
func (cmd *CheckCmd) check(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	name := filepath.Base(cmd.File.Filename)

	ctx, report := startTelemetry(ctx, globals, fmt.Sprintf("check %s", name))
	defer report(stderr)

	var opts []loader.Option
	if cmd.FollowIncludes {
		opts = append(opts, loader.WithFollowIncludes())
	}

	file, err := cmd.File.Load(ctx, loader.New(opts...))
	if err != nil {
		if stdErrors.Is(err, context.Canceled) {
			return err
		}
		return cmd.reportError(err, globals, stdout, stderr)
	}

	slog.DebugContext(ctx, "loaded scope file", "file", file.Filename, "scopes", len(file.Scopes))

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(stdout, errors.NewJSONFormatter(globals.Printer()).FormatAll(nil))
		return nil
	}

	printSuccess(stdout, fmt.Sprintf("%d scope(s) in %s", len(file.Scopes), pathStyle.Render(name)))
	return nil
}

func (cmd *CheckCmd) reportError(err error, globals *Globals, stdout, stderr io.Writer) error {
	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(stdout, errors.NewJSONFormatter(globals.Printer()).FormatAll([]error{err}))
		return NewCommandError(exitFailure, err)
	}

	source, readErr := cmd.File.GetSourceContent()
	if readErr != nil {
		source = nil
	}

	renderer := NewErrorRenderer(cmd.File.GetAbsoluteFilename(), source, globals.Printer())
	_, _ = fmt.Fprintln(stderr, renderer.Render(err))
	_, _ = fmt.Fprintln(stderr)
	printError(stderr, "check failed")

	return NewCommandError(exitFailure, err)
}
