package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// BodyMaxChars is the maximum character count for recipe body text
	BodyMaxChars int `json:"body_max_chars"`

	// ImageMaxBytes is the maximum size of a captured image.
	ImageMaxBytes int `json:"image_max_bytes"`

	// PageMaxBytes caps how much of a fetched page is read.
	PageMaxBytes int `json:"page_max_bytes"`

	// PageTimeoutSeconds is the HTTP timeout for page fetches.
	PageTimeoutSeconds int `json:"page_timeout_seconds"`

	// UserAgent is sent with page fetches.
	UserAgent string `json:"user_agent,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// All tools are enabled by default. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BodyMaxChars:       50000,
		ImageMaxBytes:      10 << 20,
		PageMaxBytes:       5 << 20,
		PageTimeoutSeconds: 15,
		UserAgent:          "crumb/1.0 (+recipe capture)",
		LogLevel:           "info",
	}
}

// PageTimeout returns PageTimeoutSeconds as a duration.
func (c *Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.crumb.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.BodyMaxChars = mergeInt(base.BodyMaxChars, overlay.BodyMaxChars)
	result.ImageMaxBytes = mergeInt(base.ImageMaxBytes, overlay.ImageMaxBytes)
	result.PageMaxBytes = mergeInt(base.PageMaxBytes, overlay.PageMaxBytes)
	result.PageTimeoutSeconds = mergeInt(base.PageTimeoutSeconds, overlay.PageTimeoutSeconds)
	result.DBMaxOpenConns = mergeInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns)
	result.DBMaxIdleConns = mergeInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns)
	result.UserAgent = mergeString(base.UserAgent, overlay.UserAgent)
	result.LogLevel = mergeString(base.LogLevel, overlay.LogLevel)

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func mergeInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

func mergeString(base, overlay string) string {
	if s := strings.TrimSpace(overlay); s != "" {
		return s
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
