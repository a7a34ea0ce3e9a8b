// Package format reindents Markdown files. It runs the formatting engine
// over a document model repeatedly until the content is stable, then
// optionally writes the result back to disk.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdindent/internal/logging"
	"github.com/yaklabco/gomdindent/pkg/fix"
	"github.com/yaklabco/gomdindent/pkg/formatting"
	"github.com/yaklabco/gomdindent/pkg/fsutil"
	"github.com/yaklabco/gomdindent/pkg/markdown"
	"github.com/yaklabco/gomdindent/pkg/parser/goldmark"
)

// Error categories, matched with errors.Is.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the document could not be parsed or modelled.
	ErrParseFailure = errors.New("parse failure")

	// ErrLayoutFailure indicates the engine rejected the document model.
	ErrLayoutFailure = errors.New("layout failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrStructureChanged indicates the reindented text would parse into a
	// different document. It is reported together with ErrLayoutFailure.
	ErrStructureChanged = errors.New("reindent changes document structure")
)

// Formatter reindents Markdown content. It is safe for concurrent use.
type Formatter struct {
	parser *goldmark.Parser
	opts   Options
}

// New creates a Formatter.
func New(opts Options) *Formatter {
	return &Formatter{
		parser: goldmark.New(opts.Flavor),
		opts:   opts,
	}
}

// Options returns the options the formatter was created with.
func (f *Formatter) Options() Options {
	return f.opts
}

// FormatContent reindents content in memory. Each pass parses the current
// text, builds the wrapper tree and applies the resulting edits; the loop
// stops at the first pass without edits or after MaxPasses. A result that
// parses into a different document is rejected with ErrStructureChanged.
func (f *Formatter) FormatContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	result := &FileResult{Path: path}

	current := content
	maxPasses := f.opts.maxPasses()
	for pass := 1; pass <= maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("formatting cancelled: %w", err)
		}

		passResult, err := f.pass(ctx, path, current)
		if err != nil {
			return nil, err
		}
		result.Lines = passResult.Lines
		result.Untouched = passResult.Skipped

		logger.Debug("pass finished",
			logging.FieldPass, pass,
			logging.FieldEdits, len(passResult.Edits),
			logging.FieldLines, passResult.Lines,
			logging.FieldSkipped, passResult.Skipped,
		)

		if !passResult.Changed() {
			result.Stable = true
			break
		}

		builder := fix.NewEditBuilder()
		builder.AddIndents(passResult.Edits)
		next, err := fix.Apply(current, builder.Edits)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLayoutFailure, err)
		}

		current = next
		result.Passes++
		result.Edits += builder.Len()
	}

	if !result.Stable {
		logger.Warn("indentation did not settle", logging.FieldPass, maxPasses)
	}

	if result.Edits == 0 || bytes.Equal(current, content) {
		return result, nil
	}

	if err := f.checkStructure(ctx, path, content, current); err != nil {
		return nil, err
	}

	result.Changed = true
	result.Formatted = current
	if f.opts.Diff {
		result.Diff = fix.GenerateDiff(path, content, current)
	}
	return result, nil
}

// pass runs the engine once over content.
func (f *Formatter) pass(ctx context.Context, path string, content []byte) (*formatting.PassResult, error) {
	root, err := f.model(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return f.run(ctx, path, content, root)
}

// model parses content into the wrapper block model.
func (f *Formatter) model(ctx context.Context, path string, content []byte) (*markdown.Block, error) {
	doc, err := f.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	root, err := markdown.Build(doc, markdown.Options{TabSize: f.opts.Indent.TabSize})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return root, nil
}

// run builds the wrapper tree for root and computes one pass of edits.
func (f *Formatter) run(ctx context.Context, path string, content []byte, root *markdown.Block) (*formatting.PassResult, error) {
	tree, err := f.tree(content, root)
	if err != nil {
		return nil, err
	}
	defer tree.DisposeAll()

	logging.FromContext(ctx).Debug("tree built", logging.FieldPath, path, logging.FieldNodes, tree.Len())

	passResult, err := formatting.NewPass(tree, f.opts.Indent, formatting.WithVerify(f.opts.Verify)).Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutFailure, err)
	}
	return passResult, nil
}

// tree builds the wrapper tree for root.
func (f *Formatter) tree(content []byte, root *markdown.Block) (*formatting.Tree, error) {
	tree, err := formatting.Build(content, root,
		formatting.WithMaxDepth(f.opts.MaxDepth),
		formatting.WithTabSize(f.opts.Indent.TabSize),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutFailure, err)
	}
	return tree, nil
}

// FormatFile reads, formats and, in write mode, rewrites a file.
//
// Before writing, the file is checked for concurrent modification; a
// changed file is skipped rather than overwritten. A sidecar backup is
// written first when backups are enabled.
func (f *Formatter) FormatFile(ctx context.Context, path string) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := f.FormatContent(ctx, path, content)
	if err != nil {
		return nil, err
	}
	if !result.Changed || !f.opts.Write {
		return result, nil
	}

	modified, err := fsutil.Changed(ctx, info, f.opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if f.opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path, content, info.Mode)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.Formatted, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logging.FromContext(ctx).Debug("file written", logging.FieldPath, path, logging.FieldEdits, result.Edits)
	return result, nil
}

// categorizeError maps file system errors onto the package categories.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsFormatError reports whether err belongs to a known category.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrLayoutFailure) ||
		errors.Is(err, ErrWriteFailure)
}
