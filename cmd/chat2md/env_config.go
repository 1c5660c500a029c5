package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-chat2md/internal/config"
)

// envPrefix starts every variable this CLI reads.
const envPrefix = "CHAT2MD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CHAT2MD_CONFIG: config file name or path
	InputDir   string // CHAT2MD_INPUT_DIR: default input directory
	OutputDir  string // CHAT2MD_OUTPUT_DIR: default output directory
	Timeout    string // CHAT2MD_TIMEOUT: page load timeout
	ControlURL string // CHAT2MD_CONTROL_URL: running browser to attach to
	Workers    int    // CHAT2MD_WORKERS: parallel workers
	HTML       bool   // CHAT2MD_HTML: write HTML previews
}

// knownEnvVars lists valid CHAT2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHAT2MD_CONFIG":      true,
	"CHAT2MD_INPUT_DIR":   true,
	"CHAT2MD_OUTPUT_DIR":  true,
	"CHAT2MD_TIMEOUT":     true,
	"CHAT2MD_CONTROL_URL": true,
	"CHAT2MD_WORKERS":     true,
	"CHAT2MD_HTML":        true,
	"CHAT2MD_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored; the timeout string is
// validated with the rest of the config.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHAT2MD_CONFIG"),
		InputDir:   os.Getenv("CHAT2MD_INPUT_DIR"),
		OutputDir:  os.Getenv("CHAT2MD_OUTPUT_DIR"),
		Timeout:    os.Getenv("CHAT2MD_TIMEOUT"),
		ControlURL: os.Getenv("CHAT2MD_CONTROL_URL"),
	}

	if workers := os.Getenv("CHAT2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if html := os.Getenv("CHAT2MD_HTML"); html != "" {
		if b, err := strconv.ParseBool(html); err == nil {
			cfg.HTML = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CHAT2MD_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout != "" && cfg.Browser.Timeout == "" {
		cfg.Browser.Timeout = env.Timeout
	}
	if env.ControlURL != "" && cfg.Browser.ControlURL == "" {
		cfg.Browser.ControlURL = env.ControlURL
	}
	if env.Workers > 0 && cfg.Browser.Workers == 0 {
		cfg.Browser.Workers = env.Workers
	}
	if env.HTML {
		cfg.Preview.Enabled = true
	}
}
