package main

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/filescope/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("filescope"),
		kong.Description("Parse, check and format file scope expressions."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	)

	logger, closeLog, err := cli.NewLogger(&app.Globals, os.Stderr)
	ctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	err = ctx.Run()
	_ = closeLog()

	var cmdErr *cli.CommandError
	if stdErrors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
