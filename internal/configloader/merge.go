package configloader

import "github.com/yaklabco/gomdindent/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, false is indistinguishable from unset
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.MaxPasses != 0 {
		result.MaxPasses = override.MaxPasses
	}

	mergeIndent(&result.Indent, override.Indent)

	if override.Verify {
		result.Verify = true
	}
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	return result
}

func mergeIndent(base *config.IndentConfig, override config.IndentConfig) {
	if override.IndentSize != 0 {
		base.IndentSize = override.IndentSize
	}
	if override.ContinuationIndentSize != 0 {
		base.ContinuationIndentSize = override.ContinuationIndentSize
	}
	if override.LabelIndentSize != 0 {
		base.LabelIndentSize = override.LabelIndentSize
	}
	if override.TabSize != 0 {
		base.TabSize = override.TabSize
	}
	if override.UseTabs {
		base.UseTabs = true
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
