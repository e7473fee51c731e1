package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileChars is the truncation threshold for file reads.
const DefaultMaxFileChars = 45000

// Config holds application configuration.
type Config struct {
	// RemoteURL is the URL of the repository to mirror. Required for sync.
	RemoteURL string `json:"remote_url,omitempty"`

	// Branch is the branch tracked by the mirror.
	Branch string `json:"branch,omitempty"`

	// MirrorDir is the local mirror directory.
	// Defaults to <base>/mirror when empty.
	MirrorDir string `json:"mirror_dir,omitempty"`

	// MaxFileChars is the maximum character count returned by a file read.
	// Longer content is truncated, never rejected.
	MaxFileChars int `json:"max_file_chars,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are reported as warnings, not errors.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// WebBind and WebPort configure the status/liveness HTTP server.
	WebBind string `json:"web_bind,omitempty"`
	WebPort int    `json:"web_port,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Branch:       "main",
		MaxFileChars: DefaultMaxFileChars,
		WebBind:      "127.0.0.1",
		WebPort:      8787,
	}
}

// Load loads configuration from baseDir/config.json.
// Missing file yields defaults; MirrorDir defaults to baseDir/mirror.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.repoview.
func Load(baseDir string) (*Config, error) {
	overlay, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	cfg := Merge(DefaultConfig(), overlay)
	if cfg.MirrorDir == "" {
		cfg.MirrorDir = filepath.Join(baseDir, "mirror")
	}
	return cfg, nil
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

	result.RemoteURL = overlay.RemoteURL
	if result.RemoteURL == "" {
		result.RemoteURL = base.RemoteURL
	}

	result.Branch = overlay.Branch
	if result.Branch == "" {
		result.Branch = base.Branch
	}

	result.MirrorDir = overlay.MirrorDir
	if result.MirrorDir == "" {
		result.MirrorDir = base.MirrorDir
	}

	result.MaxFileChars = overlay.MaxFileChars
	if result.MaxFileChars == 0 {
		result.MaxFileChars = base.MaxFileChars
	}

	result.WebBind = overlay.WebBind
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
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
