package format

import (
	"github.com/yaklabco/gomdindent/pkg/config"
	"github.com/yaklabco/gomdindent/pkg/formatting"
	"github.com/yaklabco/gomdindent/pkg/parser/goldmark"
)

// DefaultMaxPasses bounds the re-format loop of a single file.
const DefaultMaxPasses = config.DefaultMaxPasses

// Options controls how a Formatter processes files.
type Options struct {
	// Flavor is the Markdown flavor passed to the parser.
	Flavor string

	// Indent holds the indentation sizes handed to every pass.
	Indent formatting.IndentOptions

	// MaxDepth bounds wrapper tree depth and parent walks.
	MaxDepth int

	// MaxPasses limits the re-format loop. Zero uses DefaultMaxPasses.
	MaxPasses int

	// Verify runs every pass twice and fails when the runs disagree.
	Verify bool

	// Write rewrites changed files on disk.
	Write bool

	// Diff attaches a unified diff to changed results.
	Diff bool

	// Backup keeps a sidecar copy of a file before its first rewrite.
	Backup bool

	// StrictRaceDetection re-hashes files before writing to catch
	// concurrent edits that preserve size and modification time.
	StrictRaceDetection bool
}

// DefaultOptions returns options matching config.NewConfig.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

// OptionsFromConfig derives formatter options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Flavor: goldmark.FlavorOrDefault(string(cfg.Flavor)),
		Indent: formatting.IndentOptions{
			IndentSize:             cfg.Indent.IndentSize,
			ContinuationIndentSize: cfg.Indent.ContinuationIndentSize,
			LabelIndentSize:        cfg.Indent.LabelIndentSize,
			TabSize:                cfg.Indent.TabSize,
			UseTabs:                cfg.Indent.UseTabs,
		},
		MaxDepth:            cfg.MaxDepth,
		MaxPasses:           cfg.MaxPasses,
		Verify:              cfg.Verify,
		Write:               cfg.Write,
		Diff:                cfg.Format == config.FormatDiff,
		Backup:              cfg.BackupsEnabled(),
		StrictRaceDetection: true,
	}
}

func (o Options) maxPasses() int {
	if o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}
