// Package assets provides the landing-page stylesheet and the HTML templates
// used to wrap rendered content.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in keitaro stylesheet and the document
// and error templates, embedded at compile time.
//
// FilesystemLoader allows users to provide replacement assets from a
// directory, with path traversal protection and symlink resolution.
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when an asset is not found there, so a directory may
// override only the stylesheet and keep the built-in templates.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. keitaro.css
//	└── templates/
//	    ├── document.html        # Page shell (html/template)
//	    └── error.html           # Error page (html/template)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
