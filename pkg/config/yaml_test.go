package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goldif/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and switches", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Ignore:        []string{"testdata/**"},
			Extensions:    []string{".ldif", ".ldf"},
			StrictRecords: config.Bool(true),
			Jobs:          4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions = append(clone.Extensions, ".txt")
		*clone.StrictRecords = false

		assert.Equal(t, "testdata/**", original.Ignore[0])
		assert.Len(t, original.Extensions, 2)
		assert.True(t, *original.StrictRecords)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("serializes set fields only", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Format:        config.FormatJSON,
			StrictRecords: config.Bool(false),
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, "format: json\nstrict_records: false\n", string(data))
	})

	t.Run("header is separated by a blank line", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Jobs: 2}
		data, err := cfg.ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Equal(t, "# generated\n\njobs: 2\n", string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
format: json
color: never
require_version: true
extensions: [".ldif", ".ldf"]
dump_format: yaml
`))
		require.NoError(t, err)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		assert.Equal(t, config.ColorNever, cfg.Color)
		assert.True(t, cfg.RequireVersionEnabled())
		assert.Nil(t, cfg.StrictRecords)
		assert.Equal(t, []string{".ldif", ".ldf"}, cfg.Extensions)
		assert.Equal(t, config.DumpYAML, cfg.DumpFormat)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("round trips defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# goldif configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("full template carries defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("json template", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "text", decoded["format"])
		assert.Equal(t, true, decoded["show_context"])
	})
}
