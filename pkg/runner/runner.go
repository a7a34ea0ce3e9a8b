package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdindent/internal/logging"
	"github.com/yaklabco/gomdindent/pkg/format"
)

// Runner formats discovered files with a shared Formatter.
type Runner struct {
	Formatter *format.Formatter
}

// New creates a Runner.
func New(formatter *format.Formatter) *Runner {
	return &Runner{Formatter: formatter}
}

// Run discovers files and formats them with at most opts.Jobs in flight.
// A failing file is recorded in its outcome and does not stop the run;
// only cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("formatting files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Each worker owns one slot, so outcomes keep discovery order.
	outcomes := make([]*FileOutcome, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for idx, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Formatter.FormatFile(gctx, path)
			if err != nil {
				logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
			}
			outcomes[idx] = &FileOutcome{Path: path, Result: res, Error: err}
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
