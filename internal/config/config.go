// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional in the file; missing values keep their defaults and
// CLI flags override both.
type Config struct {
	// Search
	Keyword     string `json:"keyword,omitempty"`      // Search keyword for the listing page
	MaxPostings int    `json:"max_postings,omitempty" validate:"min=0"` // Cap on job cards per run, 0 means all

	// Credentials
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Output
	OutputDir string `json:"output_dir,omitempty" validate:"required"`           // Directory for generated CV PDFs
	PageSize  string `json:"page_size,omitempty" validate:"required,oneof=A4 Letter"` // PDF page size

	// Browser
	Headless    bool   `json:"headless"`                // Run the browser without a window
	UserDataDir string `json:"user_data_dir,omitempty"` // Chrome profile dir, keeps the login session

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed posting information
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		OutputDir: "out",
		PageSize:  "A4",
		Headless:  true,
	}
}

// Load reads a JSON config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration values. PageSize is canonicalized first
// so "a4" and "letter" pass. Required credentials are not checked here; the
// run command enforces them after merging flags and env.
func (c *Config) Validate() error {
	c.PageSize = canonicalPageSize(c.PageSize)
	if err := validator.New().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return fmt.Errorf("config error: field '%s' failed '%s' validation", field.Field(), field.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// canonicalPageSize maps any casing of the known page sizes to the canonical
// name so validation and the PDF renderer agree. Unknown values pass through
// unchanged and fail validation.
func canonicalPageSize(size string) string {
	switch {
	case strings.EqualFold(size, "A4"):
		return "A4"
	case strings.EqualFold(size, "Letter"):
		return "Letter"
	}
	return size
}
