package main

import (
	"errors"
	"os"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
)

// Exit codes for the elem2keitaro CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Every document converted
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or assets directory
	ExitIO         = 3 // Input not found, output not writable
	ExitConversion = 4 // A document could not be converted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Conversion errors (exit 4)
	if errors.Is(err, elem2keitaro.ErrDecode) ||
		errors.Is(err, elem2keitaro.ErrRender) ||
		errors.Is(err, elem2keitaro.ErrInternal) {
		return ExitConversion
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteBundle) ||
		errors.Is(err, ErrWriteMetrics) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, elem2keitaro.ErrInvalidAssetPath) ||
		errors.Is(err, elem2keitaro.ErrTemplateLoad) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
