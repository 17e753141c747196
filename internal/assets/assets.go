package assets

// Built-in asset names.
const (
	// DefaultStyleName is the stylesheet shipped with every bundle.
	DefaultStyleName = "keitaro"

	// DocumentTemplateName wraps rendered content into a full page.
	DocumentTemplateName = "document"

	// ErrorTemplateName is the page substituted when conversion fails.
	ErrorTemplateName = "error"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// MustStyle returns the built-in stylesheet. It panics if the embedded
// filesystem is missing it, which only happens with a broken build.
func MustStyle() string {
	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		panic(err)
	}
	return css
}
