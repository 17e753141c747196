package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-elem2keitaro/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the per-user config directory name under os.UserConfigDir.
const AppDirName = "go-elem2keitaro"

// Output formats.
const (
	FormatDir    = "dir"    // index.html, style.css and img/ in a directory
	FormatZip    = "zip"    // the same layout inside a zip archive
	FormatSingle = "single" // one self-contained HTML file
)

// Field limits.
const (
	MaxPathLength      = 4096
	MaxUserAgentLength = 512
	MaxConcurrent      = 256
	MaxTimeout         = 10 * time.Minute
)

// Config holds CLI configuration. The zero value is valid and means
// "use built-in defaults everywhere".
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Directory scanned when no input is given
}

// OutputConfig defines bundle output options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
	Format     string `yaml:"format"`     // dir, zip, single (default: dir)
	Minify     bool   `yaml:"minify"`
}

// FetchConfig defines image download options.
type FetchConfig struct {
	MaxConcurrent int    `yaml:"maxConcurrent"` // 0 = one fetch per image
	UserAgent     string `yaml:"userAgent"`     // Empty = built-in browser-like agent
	Timeout       string `yaml:"timeout"`       // Go duration, e.g. "15s"; empty = none
}

// AssetsConfig defines stylesheet and template overrides.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TimeoutDuration parses Timeout. It returns 0 for an empty or invalid value;
// Validate reports invalid ones.
func (f FetchConfig) TimeoutDuration() time.Duration {
	if f.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths, ranges and enumerations.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}

	if c.Output.Format != "" && !ValidFormat(c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (must be %s, %s, or %s)",
			ErrInvalidValue, c.Output.Format, FormatDir, FormatZip, FormatSingle)
	}

	if c.Fetch.MaxConcurrent < 0 || c.Fetch.MaxConcurrent > MaxConcurrent {
		return fmt.Errorf("%w: fetch.maxConcurrent must be between 0 and %d, got %d",
			ErrInvalidValue, MaxConcurrent, c.Fetch.MaxConcurrent)
	}

	if c.Fetch.Timeout != "" {
		d, err := time.ParseDuration(c.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidValue, err)
		}
		if d < 0 || d > MaxTimeout {
			return fmt.Errorf("%w: fetch.timeout must be between 0 and %s, got %s",
				ErrInvalidValue, MaxTimeout, d)
		}
	}

	return nil
}

// ValidFormat reports whether f names a known output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatDir, FormatZip, FormatSingle:
		return true
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatDir},
	}
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

	if isFilePath(nameOrPath) {
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) (string, error) {
	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <UserConfigDir>/go-elem2keitaro/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
