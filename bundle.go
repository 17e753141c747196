package elem2keitaro

import (
	"context"

	"github.com/alnah/go-elem2keitaro/internal/assets"
	"github.com/alnah/go-elem2keitaro/internal/media"
	"github.com/alnah/go-elem2keitaro/internal/pipeline"
)

// Asset is a fetched image: original URL, file name, content type and bytes.
type Asset = media.Asset

// Bundle locations, relative to the bundle root.
const (
	HTMLFile  = "index.html"
	CSSFile   = pipeline.StylesheetHref
	AssetsDir = media.AssetDir
)

// Bundle is the result of one conversion.
//
// On success HTML links CSSFile and references fetched images under
// AssetsDir. On failure HTML is a standalone error page, CSS is empty,
// Assets is empty and Err holds the cause.
type Bundle struct {
	HTML   string
	CSS    string
	Assets map[string]Asset // keyed by original URL
	Err    error
}

// Failed reports whether the bundle carries an error page.
func (b *Bundle) Failed() bool {
	return b.Err != nil
}

// Inline returns HTML as one self-contained document: the stylesheet link is
// replaced by an embedded style element and fetched images become data URIs.
// Failed bundles are returned unchanged.
func (b *Bundle) Inline(ctx context.Context) (string, error) {
	if b.Failed() {
		return b.HTML, nil
	}
	return pipeline.Inline(ctx, b.HTML, b.CSS, b.Assets)
}

// Stylesheet returns the built-in landing-page stylesheet. The value is
// fixed for the life of the process.
func Stylesheet() string {
	return assets.MustStyle()
}
