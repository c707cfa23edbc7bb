package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robinvdvleuten/filescope/output"
	"github.com/robinvdvleuten/filescope/telemetry"
)

// startTelemetry installs a timing collector when --telemetry is set and
// starts a root timer named name. The returned report function ends the
// root timer and prints the tree to w; it only reports once.
func startTelemetry(ctx context.Context, globals *Globals, name string) (context.Context, func(w io.Writer)) {
	if !globals.Telemetry {
		return ctx, func(io.Writer) {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)
	root := collector.Start(name)

	var once sync.Once
	return ctx, func(w io.Writer) {
		once.Do(func() {
			root.End()
			_, _ = fmt.Fprintln(w)
			collector.Report(w, output.NewStyles(w))
		})
	}
}
