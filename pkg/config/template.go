package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string

	// Full writes every setting uncommented with its default value.
	Full bool
}

// setting is one documented configuration key.
type setting struct {
	comment string
	key     string
	yaml    string
	toml    string
}

// templateSettings lists the top-level keys in template order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templateSettings = []setting{
	{"Markdown flavor: commonmark or gfm", "flavor", `"gfm"`, `"gfm"`},
	{"Upper bound on formatting passes per file", "max_passes", "3", "3"},
	{"Maximum parent depth walked when computing an offset", "max_depth", "4096", "4096"},
	{"Re-run every pass on a reset tree and fail if results differ", "verify", "false", "false"},
	{"File extensions treated as Markdown", "extensions", `[".md", ".markdown"]`, `[".md", ".markdown"]`},
	{"File patterns to ignore (glob patterns)", "ignore", `["vendor/**", "node_modules/**"]`, `["vendor/**", "node_modules/**"]`},
}

//nolint:gochecknoglobals // Read-only lookup table.
var indentSettings = []setting{
	{"Size of a normal indent", "indent_size", "4", "4"},
	{"Size of a continuation indent", "continuation_indent_size", "8", "8"},
	{"Size of a label indent", "label_indent_size", "0", "0"},
	{"Column width of a tab", "tab_size", "4", "4"},
	{"Emit tabs for leading indentation", "use_tabs", "false", "false"},
}

//nolint:gochecknoglobals // Read-only lookup table.
var backupSettings = []setting{
	{"Create a backup before writing a file", "enabled", "false", "false"},
	{"Backup mode: sidecar or none", "mode", `"sidecar"`, `"sidecar"`},
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = TemplateYAML
	}

	var buf bytes.Buffer
	buf.WriteString("# gomdindent configuration\n")
	buf.WriteString("# See: https://github.com/yaklabco/gomdindent\n")

	switch format {
	case TemplateYAML:
		writeYAMLSection(&buf, "", templateSettings, opts.Full)
		writeYAMLSection(&buf, "indent", indentSettings, opts.Full)
		writeYAMLSection(&buf, "backups", backupSettings, opts.Full)
	case TemplateTOML:
		writeTOMLSection(&buf, "", templateSettings, opts.Full)
		writeTOMLSection(&buf, "indent", indentSettings, opts.Full)
		writeTOMLSection(&buf, "backups", backupSettings, opts.Full)
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}

	return buf.Bytes(), nil
}

func writeYAMLSection(buf *bytes.Buffer, section string, settings []setting, full bool) {
	prefix, indent := commentPrefix(full), ""
	buf.WriteByte('\n')
	if section != "" {
		fmt.Fprintf(buf, "%s%s:\n", prefix, section)
		indent = "  "
	}
	for idx, s := range settings {
		if idx > 0 && section == "" {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "%s# %s\n", indent, s.comment)
		fmt.Fprintf(buf, "%s%s%s: %s\n", prefix, indent, s.key, s.yaml)
	}
}

func writeTOMLSection(buf *bytes.Buffer, section string, settings []setting, full bool) {
	prefix := commentPrefix(full)
	buf.WriteByte('\n')
	if section != "" {
		fmt.Fprintf(buf, "%s[%s]\n", prefix, section)
	}
	for idx, s := range settings {
		if idx > 0 && section == "" {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "# %s\n", s.comment)
		fmt.Fprintf(buf, "%s%s = %s\n", prefix, s.key, s.toml)
	}
}

func commentPrefix(full bool) string {
	if full {
		return ""
	}
	return "# "
}
