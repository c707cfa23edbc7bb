package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the command-line logger: text on stderr at warn level
// (debug with --verbose) and, with --log-file, JSON records at debug level
// appended to that file. The returned function closes the log file.
func NewLogger(globals *Globals, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if globals.Verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }

	if globals.LogFile != "" {
		f, err := os.OpenFile(globals.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
