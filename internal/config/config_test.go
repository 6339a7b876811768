package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "A4", cfg.PageSize)
	assert.True(t, cfg.Headless)
	assert.Zero(t, cfg.MaxPostings)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"keyword": "backend",
		"page_size": "Letter",
		"headless": false,
		"max_postings": 10
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "backend", cfg.Keyword)
	assert.Equal(t, "Letter", cfg.PageSize)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 10, cfg.MaxPostings)
	// Untouched fields keep their defaults.
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"keyword": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config JSON")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "unknown page size",
			mutate:  func(c *Config) { c.PageSize = "Tabloid" },
			wantErr: "PageSize",
		},
		{name: "lowercase a4", mutate: func(c *Config) { c.PageSize = "a4" }},
		{name: "lowercase letter", mutate: func(c *Config) { c.PageSize = "letter" }},
		{
			name:    "negative max postings",
			mutate:  func(c *Config) { c.MaxPostings = -1 },
			wantErr: "MaxPostings",
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: "OutputDir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCanonicalizesPageSize(t *testing.T) {
	// The renderer accepts any casing; validation must not be stricter.
	cfg := Default()
	cfg.PageSize = "letter"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Letter", cfg.PageSize)

	cfg.PageSize = "a4"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "A4", cfg.PageSize)
}
