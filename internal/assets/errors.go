package assets

import "errors"

// Lookup failures. Both loaders return these when the landing-page
// stylesheet or a page template is missing.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// ErrInvalidAssetName rejects names that could leave the styles/ or
// templates/ folder, such as "../x" or "a/b".
var ErrInvalidAssetName = errors.New("invalid asset name")

// Override directory failures (--assets-dir / assets.basePath).
var (
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected") // resolved file lies outside the base path
)
