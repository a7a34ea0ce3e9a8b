package configloader

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/yaklabco/gomdindent/pkg/config"
)

// envVarPrefix is the prefix for all gomdindent environment variables.
const envVarPrefix = "GOMDINDENT_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with GOMDINDENT_ (e.g., GOMDINDENT_INDENT_TAB_SIZE).
// A nil environ reads the process environment.
func LoadFromEnv(cfg *config.Config, environ map[string]string) error {
	if cfg == nil {
		return nil
	}

	opts := env.Options{Prefix: envVarPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		envVarPrefix + "FLAVOR":                   "Markdown flavor: commonmark or gfm",
		envVarPrefix + "INDENT_SIZE":              "Size of a normal indent",
		envVarPrefix + "INDENT_CONTINUATION_SIZE": "Size of a continuation indent",
		envVarPrefix + "INDENT_LABEL_SIZE":        "Size of a label indent",
		envVarPrefix + "INDENT_TAB_SIZE":          "Column width of a tab",
		envVarPrefix + "INDENT_USE_TABS":          "Emit tabs for leading indentation: true or false",
		envVarPrefix + "MAX_DEPTH":                "Maximum parent depth walked per offset",
		envVarPrefix + "MAX_PASSES":               "Upper bound on formatting passes per file",
		envVarPrefix + "VERIFY":                   "Verify every pass on a reset tree: true or false",
		envVarPrefix + "EXTENSIONS":               "Comma-separated list of Markdown file extensions",
		envVarPrefix + "IGNORE":                   "Comma-separated list of ignore patterns",
		envVarPrefix + "BACKUPS_ENABLED":          "Enable backups when writing: true or false",
		envVarPrefix + "BACKUPS_MODE":             "Backup mode: sidecar or none",
		envVarPrefix + "WRITE":                    "Rewrite files in place: true or false",
		envVarPrefix + "CHECK":                    "Fail when files would change: true or false",
		envVarPrefix + "FORMAT":                   "Output format: text, json, or diff",
		envVarPrefix + "JOBS":                     "Number of parallel workers (0 = auto)",
		envVarPrefix + "NO_BACKUPS":               "Disable backups: true or false",
	}
}
