package pipeline

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

// Media types handled by Minifier.
const (
	htmlMediaType = "text/html"
	cssMediaType  = "text/css"
)

// Minifier shrinks HTML and CSS output. Platform macros such as
// {offer_name} are plain text to the minifier and survive unchanged.
type Minifier struct {
	m *minify.M
}

// NewMinifier creates a Minifier for documents, stylesheets and the inline
// scripts the document carries.
func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(cssMediaType, mincss.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), minjs.Minify)
	m.Add(htmlMediaType, &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return &Minifier{m: m}
}

// HTML minifies a document.
func (mf *Minifier) HTML(s string) (string, error) {
	out, err := mf.m.String(htmlMediaType, s)
	if err != nil {
		return "", fmt.Errorf("minifying HTML: %w", err)
	}
	return out, nil
}

// CSS minifies a stylesheet.
func (mf *Minifier) CSS(s string) (string, error) {
	out, err := mf.m.String(cssMediaType, s)
	if err != nil {
		return "", fmt.Errorf("minifying CSS: %w", err)
	}
	return out, nil
}
