package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdindent/internal/ui/pretty"
	"github.com/yaklabco/gomdindent/pkg/config"
	"github.com/yaklabco/gomdindent/pkg/format"
)

type treeFlags struct {
	flavor  string
	tabSize int
	edits   bool
	at      int
}

func newTreeCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the block model of a Markdown file",
		Long: `Print the blocks gomdindent builds for a file: kind, byte range, indent
kind, alignment and wrap groups, and a short excerpt of every leaf. With
--edits, also list the indentation changes a single pass would make. With
--at OFFSET, report the column a new line inserted at that byte offset
would get.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.tabSize, "tab-size", 0, "tab width used to measure indentation")
	cmd.Flags().BoolVar(&flags.edits, "edits", false, "list the edits of one pass")
	cmd.Flags().IntVar(&flags.at, "at", -1, "report the indentation of a new line inserted at this byte offset")
	return cmd
}

func runTree(cmd *cobra.Command, path string, flags *treeFlags) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return withCode(ExitIOError, fmt.Errorf("read %s: %w", path, err))
	}

	opts := format.DefaultOptions()
	opts.Flavor = flags.flavor
	if flags.tabSize > 0 {
		opts.Indent.TabSize = flags.tabSize
	}

	inspection, err := format.New(opts).Inspect(cmd.Context(), path, content)
	if err != nil {
		return withCode(ExitInternalError, err)
	}

	out := cmd.OutOrStdout()
	if err := inspection.DumpModel(out); err != nil {
		return withCode(ExitIOError, err)
	}
	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	if flags.edits {
		fmt.Fprintln(out)
		printEdits(out, styles, inspection)
	}
	if flags.at >= 0 {
		fmt.Fprintln(out)
		if err := printPlacement(out, styles, inspection, flags.at); err != nil {
			return withCode(ExitInternalError, err)
		}
	}
	return nil
}

func printEdits(out io.Writer, styles *pretty.Styles, inspection *format.Inspection) {
	if len(inspection.Pass.Edits) == 0 {
		fmt.Fprintln(out, styles.Success.Render("no edits"))
		return
	}
	for _, edit := range inspection.Pass.Edits {
		fmt.Fprintf(out, "%s %s %s %s\n",
			styles.Bold.Render(fmt.Sprintf("line %d:", inspection.Line(edit.StartOffset))),
			styles.DiffRemove.Render(strconv.Quote(edit.OldText)),
			styles.Dim.Render("->"),
			styles.DiffAdd.Render(strconv.Quote(edit.NewText)),
		)
	}
}

func printPlacement(out io.Writer, styles *pretty.Styles, inspection *format.Inspection, offset int) error {
	placement, err := inspection.PlaceLine(offset)
	if err != nil {
		return err
	}

	how := "indent"
	if placement.Aligned {
		how = "aligned"
	}
	fmt.Fprintf(out, "%s column %d (%s), joins %s",
		styles.Bold.Render(fmt.Sprintf("new line at offset %d (line %d):", offset, inspection.Line(offset))),
		placement.Indent.Total(), how, placement.Parent)
	if placement.HasGoverning {
		fmt.Fprintf(out, ", governed by %s", placement.Governing)
	}
	fmt.Fprintln(out)
	return nil
}
