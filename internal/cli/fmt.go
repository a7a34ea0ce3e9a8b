package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdindent/internal/configloader"
	"github.com/yaklabco/gomdindent/internal/logging"
	"github.com/yaklabco/gomdindent/pkg/config"
	"github.com/yaklabco/gomdindent/pkg/format"
	"github.com/yaklabco/gomdindent/pkg/reporter"
	"github.com/yaklabco/gomdindent/pkg/runner"
)

type fmtFlags struct {
	format  string
	flavor  string
	diff    bool
	watch   bool
	verbose bool
	compact bool
}

func newFmtCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:     "fmt [paths...]",
		Aliases: []string{"format"},
		Short:   "Reindent Markdown files",
		Long:    fmtLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, cfg, flags)
		},
	}

	addFmtFlags(cmd, cfg, flags)
	return cmd
}

const fmtLongDescription = `Reindent Markdown files so that list continuations, nested blocks
and code inside list items line up with their containers.

Without --write, files are only checked: changed files are listed and the
command exits with status 1. Blocks that are not terminated, such as an
unclosed code fence, are left untouched.

Examples:
  gomdindent fmt                     # Check the current directory
  gomdindent fmt --write docs/       # Reindent files under docs/
  gomdindent fmt --diff README.md    # Show the changes as a unified diff
  gomdindent fmt --format json       # Machine-readable results
  gomdindent fmt --write --watch     # Reindent files as they are saved`

func addFmtFlags(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) {
	f := cmd.Flags()
	f.BoolVarP(&cfg.Write, "write", "w", false, "rewrite files in place")
	f.BoolVar(&cfg.Check, "check", false, "only report files that need reindenting (default)")
	f.BoolVar(&flags.diff, "diff", false, "print unified diffs (same as --format diff)")
	f.StringVar(&flags.format, "format", "", "output format: text, json, diff")
	f.IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of files formatted at once (0 = auto)")
	f.StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	f.IntVar(&cfg.Indent.IndentSize, "indent-size", 0, "indent of nested blocks")
	f.IntVar(&cfg.Indent.TabSize, "tab-size", 0, "tab width used to measure indentation")
	f.BoolVar(&cfg.Indent.UseTabs, "use-tabs", false, "indent with tabs where possible")
	f.IntVar(&cfg.MaxPasses, "max-passes", 0, "maximum reindent passes per file")
	f.BoolVar(&cfg.Verify, "verify", false, "run every pass twice and fail on disagreement")
	f.StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to skip")
	f.BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep backups when writing")
	f.BoolVar(&flags.watch, "watch", false, "keep running and reformat files when they change")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "also list files that are already formatted")
	f.BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
}

// fmtSession holds everything a run needs once configuration is resolved.
type fmtSession struct {
	cfg      *config.Config
	workDir  string
	args     []string
	runner   *runner.Runner
	reporter reporter.Options
}

func runFmt(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fmtFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newFmtSession(ctx, cmd, args, cliCfg, flags)
	if err != nil {
		return err
	}

	if flags.watch {
		return watch(ctx, session)
	}

	result, err := session.run(ctx)
	if err != nil {
		return err
	}

	switch ExitCodeFromResult(result, session.cfg.Write) {
	case ExitNeedsFormatting:
		return ErrNeedsFormatting
	case ExitFileErrors:
		return ErrFilesFailed
	default:
		return nil
	}
}

func newFmtSession(ctx context.Context, cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fmtFlags) (*fmtSession, error) {
	logger := logging.Default()

	if flags.diff {
		cliCfg.Format = config.FormatDiff
	}
	if flags.format != "" {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if flags.flavor != "" {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, withCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}

	cfg := loaded.Config
	logger.Debug("configuration resolved",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldWrite, cfg.Write,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldTabSize, cfg.Indent.TabSize,
	)

	repFormat, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	return &fmtSession{
		cfg:     cfg,
		workDir: workDir,
		args:    args,
		runner:  runner.New(format.New(format.OptionsFromConfig(cfg))),
		reporter: reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Format:      repFormat,
			Color:       colorMode,
			Verbose:     flags.verbose,
			ShowSummary: true,
			Compact:     flags.compact,
			WorkingDir:  workDir,
		},
	}, nil
}

// run formats the session paths once and reports the result.
func (s *fmtSession) run(ctx context.Context) (*runner.Result, error) {
	return s.runPaths(ctx, s.args)
}

func (s *fmtSession) runPaths(ctx context.Context, paths []string) (*runner.Result, error) {
	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.WorkingDir = s.workDir

	logging.Default().Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := s.runner.Run(ctx, opts)
	if err != nil {
		return nil, withCode(ExitIOError, fmt.Errorf("format run failed: %w", err))
	}

	logging.Default().Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(s.reporter)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return nil, withCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}
	return result, nil
}
