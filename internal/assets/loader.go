package assets

// AssetLoader defines the contract for loading the stylesheet and HTML templates.
type AssetLoader interface {
	// LoadStyle returns the stylesheet stored as <name>.css.
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns the page template stored as <name>.html.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
