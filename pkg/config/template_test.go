package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   config.TemplateOptions
		decode func([]byte, *config.Config) error
	}{
		{
			name:   "minimal yaml",
			opts:   config.TemplateOptions{Format: config.TemplateYAML},
			decode: config.DecodeYAML,
		},
		{
			name:   "full yaml",
			opts:   config.TemplateOptions{Format: config.TemplateYAML, Full: true},
			decode: config.DecodeYAML,
		},
		{
			name: "full toml",
			opts: config.TemplateOptions{Format: config.TemplateTOML, Full: true},
			decode: func(data []byte, cfg *config.Config) error {
				unknown, err := config.DecodeTOML(data, cfg)
				if len(unknown) > 0 {
					t.Errorf("unknown keys %v", unknown)
				}
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)
			assert.Contains(t, string(data), "# gomdindent configuration")

			cfg := config.NewConfig()
			require.NoError(t, tt.decode(data, cfg))

			want := config.NewConfig()
			if tt.opts.Full {
				want.Extensions = []string{".md", ".markdown"}
				want.Ignore = []string{"vendor/**", "node_modules/**"}
			}
			assert.Equal(t, want, cfg)
		})
	}
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	assert.ErrorContains(t, err, "unknown template format")
}
