package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	// Bind is the interface the HTTP API listens on
	Bind string `json:"bind,omitempty"`

	// Port is the HTTP API port
	Port int `json:"port,omitempty"`

	// MetricsPort serves /metrics on a separate listener when non-zero.
	// When zero, /metrics is mounted on the API router.
	MetricsPort int `json:"metrics_port,omitempty"`

	// StoreBackend selects the record store: "memory" (default) or "sqlite".
	// Both keep records in process memory only.
	StoreBackend string `json:"store_backend,omitempty"`

	// LogLevel is a zap level name: debug, info, warn, error
	LogLevel string `json:"log_level,omitempty"`

	// LogFormat is "json" or "console"
	LogFormat string `json:"log_format,omitempty"`

	// MaxValueChars rejects longer values on create. 0 means unlimited.
	MaxValueChars int `json:"max_value_chars,omitempty"`

	// ShutdownTimeoutSeconds bounds graceful HTTP shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds,omitempty"`

	// CORSOrigins is the list of allowed CORS origins for the HTTP API
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:                   "127.0.0.1",
		Port:                   8080,
		StoreBackend:           BackendMemory,
		LogLevel:               "info",
		LogFormat:              "json",
		ShutdownTimeoutSeconds: 5,
		CORSOrigins:            []string{"*"},
	}
}

// BaseDir returns the configuration directory: $LEXIS_HOME if set,
// otherwise ~/.lexis.
func BaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("LEXIS_HOME")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lexis"), nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.lexis.
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
// Overlay values take precedence for scalars; arrays are merged and deduplicated,
// except CORSOrigins where a non-empty overlay replaces the base list.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Bind = firstString(overlay.Bind, base.Bind)
	result.StoreBackend = firstString(overlay.StoreBackend, base.StoreBackend)
	result.LogLevel = firstString(overlay.LogLevel, base.LogLevel)
	result.LogFormat = firstString(overlay.LogFormat, base.LogFormat)

	result.Port = firstInt(overlay.Port, base.Port)
	result.MetricsPort = firstInt(overlay.MetricsPort, base.MetricsPort)
	result.MaxValueChars = firstInt(overlay.MaxValueChars, base.MaxValueChars)
	result.ShutdownTimeoutSeconds = firstInt(overlay.ShutdownTimeoutSeconds, base.ShutdownTimeoutSeconds)

	result.CORSOrigins = mergeStringSlice(nil, overlay.CORSOrigins)
	if result.CORSOrigins == nil {
		result.CORSOrigins = mergeStringSlice(nil, base.CORSOrigins)
	}
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite:
	default:
		return errors.New(`store_backend must be one of: "memory", "sqlite"`)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.New(`log_format must be one of: "json", "console"`)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return errors.New("metrics_port must be between 0 and 65535")
	}
	if c.MaxValueChars < 0 {
		return errors.New("max_value_chars must be non-negative")
	}
	return nil
}

func firstString(overlay, base string) string {
	if s := strings.TrimSpace(overlay); s != "" {
		return s
	}
	return base
}

func firstInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
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
