package cli

import (
	"golang.org/x/text/message"

	"github.com/robinvdvleuten/filescope/messages"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Lang      string `help:"Language for diagnostics: en or de." default:"en" env:"FILESCOPE_LANG"`
	Verbose   bool   `short:"v" help:"Log debug messages to stderr."`
	LogFile   string `help:"Also write JSON logs to this file." type:"path" placeholder:"FILE"`
}

// Printer returns the message printer for the selected language.
func (g *Globals) Printer() *message.Printer {
	return messages.Lookup(g.Lang)
}

type Commands struct {
	Globals

	Check   CheckCmd   `cmd:"" help:"Load a scope file and report errors."`
	Parse   ParseCmd   `cmd:"" help:"Parse a scope expression and print it in canonical form."`
	Tokens  TokensCmd  `cmd:"" help:"Show the tokens of a scope expression."`
	Fmt     FmtCmd     `cmd:"" help:"Format a scope file."`
	Grammar GrammarCmd `cmd:"" help:"Print the grammar of scope expressions."`
}
