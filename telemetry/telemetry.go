// Package telemetry collects hierarchical timings for parse and load phases.
//
// Collectors travel in a context so that library code can be instrumented
// without changing its signatures. When no collector is present FromContext
// returns a no-op collector.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("check scopes.txt")
//	set, err := parser.ParseString(ctx, "file:*.go")
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/robinvdvleuten/filescope/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timings for named operations.
type Collector interface {
	// Start begins timing an operation nested under the innermost running one.
	Start(name string) Timer

	// Report writes the collected timings to w. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer and records its duration.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// Timing is a finished operation as reported by TimingCollector.Timings.
type Timing struct {
	Name     string
	Depth    int
	Duration time.Duration
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector carried by ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

type noOpCollector struct{}

func (noOpCollector) Start(string) Timer                 { return noOpTimer{} }
func (noOpCollector) Report(io.Writer, *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End()               {}
func (noOpTimer) Child(string) Timer { return noOpTimer{} }
