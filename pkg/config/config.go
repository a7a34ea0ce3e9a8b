// Package config defines core configuration types for gomdindent.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

import "slices"

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// OutputFormat specifies how run results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// Default engine limits.
const (
	DefaultMaxPasses = 3
	DefaultMaxDepth  = 4096
)

// IndentConfig holds the sizes each indent kind maps to.
type IndentConfig struct {
	IndentSize             int  `yaml:"indent_size"              toml:"indent_size"              env:"SIZE"`
	ContinuationIndentSize int  `yaml:"continuation_indent_size" toml:"continuation_indent_size" env:"CONTINUATION_SIZE"`
	LabelIndentSize        int  `yaml:"label_indent_size"        toml:"label_indent_size"        env:"LABEL_SIZE"`
	TabSize                int  `yaml:"tab_size"                 toml:"tab_size"                 env:"TAB_SIZE"`
	UseTabs                bool `yaml:"use_tabs"                 toml:"use_tabs"                 env:"USE_TABS"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Mode    string `yaml:"mode"    toml:"mode"    env:"MODE"`
}

// Config is the root configuration structure for gomdindent.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" toml:"flavor" env:"FLAVOR"`

	// Indent configures indentation sizes.
	Indent IndentConfig `yaml:"indent" toml:"indent" envPrefix:"INDENT_"`

	// MaxDepth bounds the parent walk of a single offset computation.
	MaxDepth int `yaml:"max_depth" toml:"max_depth" env:"MAX_DEPTH"`

	// MaxPasses limits how often a file is re-formatted until stable.
	MaxPasses int `yaml:"max_passes" toml:"max_passes" env:"MAX_PASSES"`

	// Verify re-runs every pass on a reset tree and fails on differences.
	Verify bool `yaml:"verify" toml:"verify" env:"VERIFY"`

	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty" env:"EXTENSIONS"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty" env:"IGNORE"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" toml:"backups" envPrefix:"BACKUPS_"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-" toml:"-" env:"WRITE"`

	// Check reports files that would change and fails if any do.
	Check bool `yaml:"-" toml:"-" env:"CHECK"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-" env:"FORMAT"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-" env:"JOBS"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-" env:"NO_BACKUPS"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorGFM,
		Indent: IndentConfig{
			IndentSize:             4,
			ContinuationIndentSize: 8,
			LabelIndentSize:        0,
			TabSize:                4,
		},
		MaxDepth:  DefaultMaxDepth,
		MaxPasses: DefaultMaxPasses,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// BackupsEnabled reports whether writes should create backups.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	return &clone
}
