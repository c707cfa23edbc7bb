package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often write files in multiple steps.
const debounceDelay = 100 * time.Millisecond

// watch checks the file, then checks it again after every change until ctx
// is cancelled. The directory is watched rather than the file so that
// atomic saves, which replace the file, are seen. On cancellation the
// outcome of the last completed check is returned.
func (cmd *CheckCmd) watch(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	path := cmd.File.GetAbsoluteFilename()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	failed, err := cmd.checkOnce(ctx, globals, stdout, stderr)
	if err != nil {
		return err
	}
	printInfof(stdout, "watching %s", pathStyle.Render(filepath.Base(path)))

	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if failed != nil {
				return failed
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.DebugContext(ctx, "file changed", "file", event.Name, "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "file watcher error", "error", err)

		case <-fire:
			fire = nil
			printInfof(stdout, "%s changed", pathStyle.Render(filepath.Base(path)))
			result, err := cmd.checkOnce(ctx, globals, stdout, stderr)
			if err != nil {
				return err
			}
			if ctx.Err() == nil {
				failed = result
			}
		}
	}
}

// checkOnce runs a check. Check failures have already been reported and are
// returned as failed rather than err; a check cut short by cancellation
// yields neither.
func (cmd *CheckCmd) checkOnce(ctx context.Context, globals *Globals, stdout, stderr io.Writer) (failed *CommandError, err error) {
	err = cmd.check(ctx, globals, stdout, stderr)

	if stdErrors.As(err, &failed) {
		return failed, nil
	}
	if stdErrors.Is(err, context.Canceled) {
		return nil, nil
	}
	return nil, err
}
