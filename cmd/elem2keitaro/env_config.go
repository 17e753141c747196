package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-elem2keitaro/internal/config"
)

const envPrefix = "ELEM2KEITARO_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // ELEM2KEITARO_CONFIG
	InputDir     string // ELEM2KEITARO_INPUT_DIR
	OutputDir    string // ELEM2KEITARO_OUTPUT_DIR
	Format       string // ELEM2KEITARO_FORMAT
	Workers      int    // ELEM2KEITARO_WORKERS
	FetchTimeout string // ELEM2KEITARO_FETCH_TIMEOUT
	UserAgent    string // ELEM2KEITARO_USER_AGENT
	AssetsDir    string // ELEM2KEITARO_ASSETS_DIR
}

// knownEnvVars lists valid ELEM2KEITARO_* environment variables.
var knownEnvVars = map[string]bool{
	"ELEM2KEITARO_CONFIG":        true,
	"ELEM2KEITARO_INPUT_DIR":     true,
	"ELEM2KEITARO_OUTPUT_DIR":    true,
	"ELEM2KEITARO_FORMAT":        true,
	"ELEM2KEITARO_WORKERS":       true,
	"ELEM2KEITARO_FETCH_TIMEOUT": true,
	"ELEM2KEITARO_USER_AGENT":    true,
	"ELEM2KEITARO_ASSETS_DIR":    true,
}

// loadEnvConfig reads configuration from environment variables.
// A non-numeric or non-positive ELEM2KEITARO_WORKERS is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("ELEM2KEITARO_CONFIG"),
		InputDir:     os.Getenv("ELEM2KEITARO_INPUT_DIR"),
		OutputDir:    os.Getenv("ELEM2KEITARO_OUTPUT_DIR"),
		Format:       os.Getenv("ELEM2KEITARO_FORMAT"),
		FetchTimeout: os.Getenv("ELEM2KEITARO_FETCH_TIMEOUT"),
		UserAgent:    os.Getenv("ELEM2KEITARO_USER_AGENT"),
		AssetsDir:    os.Getenv("ELEM2KEITARO_ASSETS_DIR"),
	}

	if workers := os.Getenv("ELEM2KEITARO_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized ELEM2KEITARO_*
// variable, catching typos like ELEM2KEITARO_FROMAT.
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

// applyEnvConfig overlays set environment variables onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.FetchTimeout != "" {
		cfg.Fetch.Timeout = env.FetchTimeout
	}
	if env.UserAgent != "" {
		cfg.Fetch.UserAgent = env.UserAgent
	}
	if env.AssetsDir != "" {
		cfg.Assets.BasePath = env.AssetsDir
	}
}
