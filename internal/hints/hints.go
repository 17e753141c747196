// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-elem2keitaro/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForImageFetch returns hints for images that could not be downloaded.
func ForImageFetch() string {
	var hints []string

	if os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" && IsInContainer() {
		hints = append(hints, "containers often need HTTPS_PROXY to reach image hosts")
	}
	hints = append(hints, "raise --fetch-timeout for slow hosts; failed images keep their remote URL")

	return formatHints(hints)
}

// ForInvalidDocument returns a hint for documents that are not valid JSON.
func ForInvalidDocument() string {
	return format("export the page from the page builder as .json and pass that file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the per-user config path.
func ForConfigNotFound(searchedPaths []string, appDir string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/"+appDir+"/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetsDir returns hints for an unusable --assets-dir.
func ForAssetsDir() string {
	return format("the directory may hold styles/keitaro.css and templates/{document,error}.html; missing files fall back to built-ins")
}

// ForFormat lists the available output formats.
func ForFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
