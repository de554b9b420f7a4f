// Package config holds the process configuration: the reports root, the
// cache refresh flag, and every size and pagination ceiling. A Config is
// built once at startup and passed explicitly into each component; nothing
// reads ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full process configuration. Zero values are filled in by
// Default; Finalize validates and normalizes the result.
type Config struct {
	// ReportsDir is the absolute directory containing sos report trees.
	// Set once at startup, read-only thereafter.
	ReportsDir string `yaml:"reports_dir"`

	// RefreshCache discards the on-disk metadata cache at startup,
	// forcing a full recompute on the next scan.
	RefreshCache bool `yaml:"refresh_cache"`

	// CacheFile is the cache file name, stored inside ReportsDir.
	CacheFile string `yaml:"cache_file"`

	// MaxTextChars is the default and hard cap for read_file character
	// pages.
	MaxTextChars int `yaml:"max_text_chars"`

	// MaxListItems caps how many report entries discovery returns.
	MaxListItems int `yaml:"max_list_items"`

	// DefaultPageItems and MaxPageItems are the default and hard cap for
	// item-count pages (directory listings, name searches).
	DefaultPageItems int `yaml:"default_page_items"`
	MaxPageItems     int `yaml:"max_page_items"`

	// DefaultSearchBudget and MaxSearchBudget bound how many raw matches
	// a search collects before sorting and paginating.
	DefaultSearchBudget int `yaml:"default_search_budget"`
	MaxSearchBudget     int `yaml:"max_search_budget"`

	// DefaultMatches and MaxMatches bound in-file search match counts.
	DefaultMatches int `yaml:"default_matches"`
	MaxMatches     int `yaml:"max_matches"`

	// DefaultSearchChars and MaxSearchChars bound the rendered-match
	// character page of an in-file search.
	DefaultSearchChars int `yaml:"default_search_chars"`
	MaxSearchChars     int `yaml:"max_search_chars"`

	// MaxResponseBytes is the hard ceiling on any serialized response.
	MaxResponseBytes int `yaml:"max_response_bytes"`
}

// Default returns a Config with the standard limits.
func Default() Config {
	return Config{
		CacheFile:           ".soslens_cache.json",
		MaxTextChars:        10000,
		MaxListItems:        50,
		DefaultPageItems:    50,
		MaxPageItems:        100,
		DefaultSearchBudget: 500,
		MaxSearchBudget:     2000,
		DefaultMatches:      50,
		MaxMatches:          200,
		DefaultSearchChars:  10000,
		MaxSearchChars:      50000,
		MaxResponseBytes:    2 * 1024 * 1024,
	}
}

// LoadFile overlays values from a YAML file onto the receiver.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment overrides.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv("SOSLENS_REPORTS_DIR"); dir != "" {
		c.ReportsDir = dir
	}
	if v := os.Getenv("SOSLENS_REFRESH_CACHE"); v == "1" || v == "true" {
		c.RefreshCache = true
	}
}

// Finalize validates the configuration and makes ReportsDir absolute.
func (c *Config) Finalize() error {
	if c.ReportsDir == "" {
		return fmt.Errorf("reports directory is required (--reports-dir or SOSLENS_REPORTS_DIR)")
	}
	abs, err := filepath.Abs(c.ReportsDir)
	if err != nil {
		return fmt.Errorf("resolve reports directory: %w", err)
	}
	c.ReportsDir = abs
	return nil
}
