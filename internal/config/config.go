// Package config loads the YAML configuration of the chat2md CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-chat2md/internal/fileutil"
)

// AppName names the per-user configuration directory.
const AppName = "go-chat2md"

// MaxInputSize limits YAML input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxSelectorLength = 256
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxDenestPasses   = 50
	MaxWorkers        = 8 // Same cap as the browser pool
)

// Config holds all configuration for transcript export.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Selectors SelectorsConfig `yaml:"selectors"`
	Browser   BrowserConfig   `yaml:"browser"`
	Preview   PreviewConfig   `yaml:"preview"`
	Notice    NoticeConfig    `yaml:"notice"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when convert gets no argument
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source, or cwd for URLs
}

// SelectorsConfig overrides the CSS selectors that locate messages.
// Empty fields keep the built-in defaults.
type SelectorsConfig struct {
	Message string `yaml:"message"`
	Text    string `yaml:"text"`
	Avatar  string `yaml:"avatar"`
}

// BrowserConfig defines how live pages are fetched.
type BrowserConfig struct {
	ControlURL string `yaml:"controlURL"` // Attach to a running browser instead of launching
	Bin        string `yaml:"bin"`        // Browser binary (default: ROD_BROWSER_BIN or auto)
	NoSandbox  bool   `yaml:"noSandbox"`
	Timeout    string `yaml:"timeout"` // Go duration, e.g. "45s" (default: 30s)
	Workers    int    `yaml:"workers"` // Parallel browsers (0 = auto)
}

// PreviewConfig defines the HTML preview written next to each transcript.
type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
	RawHTML bool `yaml:"rawHTML"` // Render HTML the transcript passes through
}

// NoticeConfig defines the "no messages" notice.
type NoticeConfig struct {
	Duration string `yaml:"duration"` // Go duration (default: 2.5s)
}

// PipelineConfig tunes the conversion stages.
type PipelineConfig struct {
	DenestPasses int `yaml:"denestPasses"` // 0 = default
}

// TimeoutDuration returns the parsed browser timeout, zero when unset.
func (b BrowserConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("browser.timeout", b.Timeout)
}

// DurationValue returns the parsed notice duration, zero when unset.
func (n NoticeConfig) DurationValue() (time.Duration, error) {
	return parseDuration("notice.duration", n.Duration)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, s)
	}
	return d, nil
}

// Validate checks field lengths, ranges and durations.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"selectors.message", c.Selectors.Message, MaxSelectorLength},
		{"selectors.text", c.Selectors.Text, MaxSelectorLength},
		{"selectors.avatar", c.Selectors.Avatar, MaxSelectorLength},
		{"browser.controlURL", c.Browser.ControlURL, MaxURLLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if _, err := c.Browser.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Notice.DurationValue(); err != nil {
		return err
	}

	if c.Browser.Workers < 0 || c.Browser.Workers > MaxWorkers {
		return fmt.Errorf("%w: browser.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Browser.Workers)
	}
	if c.Pipeline.DenestPasses < 0 || c.Pipeline.DenestPasses > MaxDenestPasses {
		return fmt.Errorf("%w: pipeline.denestPasses: must be between 0 and %d, got %d", ErrInvalidValue, MaxDenestPasses, c.Pipeline.DenestPasses)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that keeps every built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown fields are rejected.
// Empty input yields DefaultConfig.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxInputSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-chat2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// os.UserConfigDir honors XDG_CONFIG_HOME
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
