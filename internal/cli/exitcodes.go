package cli

import (
	"errors"

	"github.com/yaklabco/gomdindent/pkg/runner"
)

// Exit codes for gomdindent.
const (
	// ExitSuccess indicates every file is already formatted or was rewritten.
	ExitSuccess = 0

	// ExitNeedsFormatting indicates a check run found files to reindent.
	ExitNeedsFormatting = 1

	// ExitFileErrors indicates at least one file could not be processed.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors carrying a non-zero exit status without a message to log.
var (
	ErrNeedsFormatting = errors.New("files need reindenting")
	ErrFilesFailed     = errors.New("some files could not be formatted")
)

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCodeFromResult maps a run onto an exit code. Pending changes only
// fail the run when nothing was written.
func ExitCodeFromResult(result *runner.Result, write bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitFileErrors
	case result.HasChanges() && !write:
		return ExitNeedsFormatting
	default:
		return ExitSuccess
	}
}

// ExitCode returns the process exit status for an error returned by Execute.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNeedsFormatting):
		return ExitNeedsFormatting
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return ExitInvalidUsage
	}
}

// IsSilent reports whether err only signals an exit status and should not
// be logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrNeedsFormatting) || errors.Is(err, ErrFilesFailed)
}
