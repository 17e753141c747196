package assets

import (
	"embed"
	"fmt"
)

// The binary ships the Keitaro stylesheet and the document and error page
// templates.
var (
	//go:embed styles/*.css
	styles embed.FS

	//go:embed templates/*.html
	templates embed.FS
)

// EmbeddedLoader serves the stylesheet and templates built into the binary.
// It is the fallback behind every AssetResolver.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/<name>.css, e.g. LoadStyle("keitaro").
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(styles, "styles/", name, ".css", ErrStyleNotFound)
}

// LoadTemplate returns templates/<name>.html, e.g. LoadTemplate("error").
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded(templates, "templates/", name, ".html", ErrTemplateNotFound)
}

func readEmbedded(fsys embed.FS, dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := fsys.ReadFile(dir + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
