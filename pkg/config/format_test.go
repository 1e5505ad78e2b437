package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goldif/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" json ", config.FormatJSON, false},
		{"summary", config.FormatSummary, false},
		{"sarif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"auto", "always", "never", "Always"} {
		_, err := config.ParseColorMode(mode)
		require.NoError(t, err, mode)
	}

	_, err := config.ParseColorMode("sometimes")
	assert.ErrorContains(t, err, `unknown color mode "sometimes"`)
}

func TestParseDumpFormat(t *testing.T) {
	t.Parallel()

	got, err := config.ParseDumpFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, config.DumpYAML, got)

	got, err = config.ParseDumpFormat("json")
	require.NoError(t, err)
	assert.Equal(t, config.DumpJSON, got)

	_, err = config.ParseDumpFormat("ldif")
	require.Error(t, err)
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, []string{".ldif"}, cfg.Extensions)
	assert.True(t, cfg.ShowContextEnabled())
	assert.False(t, cfg.RequireVersionEnabled())
	assert.False(t, cfg.StrictRecordsEnabled())
	assert.False(t, cfg.ResolveURLsEnabled())
	assert.Equal(t, config.DumpJSON, cfg.DumpFormat)

	var empty config.Config
	assert.True(t, empty.ShowContextEnabled(), "nil ShowContext defaults to true")
	assert.False(t, empty.StrictRecordsEnabled())
}
