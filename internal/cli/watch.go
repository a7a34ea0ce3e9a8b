package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomdindent/internal/logging"
	"github.com/yaklabco/gomdindent/pkg/runner"
)

// watchDebounce collects bursts of events (editors often write a file in
// several steps) into one run.
const watchDebounce = 150 * time.Millisecond

// watch formats the session paths once, then reformats discovered files
// whenever they are written until the context is cancelled or the process
// is interrupted.
func watch(ctx context.Context, s *fmtSession) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := logging.NewInteractive()

	if _, err := s.run(ctx); err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(s.cfg, s.args)
	opts.WorkingDir = s.workDir
	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return withCode(ExitIOError, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return withCode(ExitInternalError, fmt.Errorf("create watcher: %w", err))
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(files))
	for _, file := range files {
		watched[file] = struct{}{}
		dir := filepath.Dir(file)
		if slices.Contains(watcher.WatchList(), dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return withCode(ExitIOError, fmt.Errorf("watch %s: %w", dir, err))
		}
	}

	logger.Info("watching for changes", logging.FieldFiles, len(watched))

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, ok := watched[event.Name]; !ok {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)

			logger.Info("reformatting", logging.FieldPaths, paths)
			if _, err := s.runPaths(ctx, paths); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("run failed", logging.FieldError, err)
			}
		}
	}
}
