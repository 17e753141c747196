package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// StylesheetHref is the path the document links its stylesheet from. The
// bundle stores the CSS under this name.
const StylesheetHref = "style.css"

// ErrShellRender indicates the document template failed to execute.
var ErrShellRender = errors.New("document template rendering failed")

// DocumentWrapper defines the contract for wrapping rendered content in a
// complete HTML document.
type DocumentWrapper interface {
	Wrap(ctx context.Context, body string) (string, error)
}

// documentData is the document template's input.
type documentData struct {
	Stylesheet string
	Body       template.HTML
}

// DocumentShell renders the landing-page document around rendered content.
type DocumentShell struct {
	tmpl *template.Template
}

// NewDocumentShell creates a DocumentShell from template content.
// Returns error if the template cannot be parsed.
func NewDocumentShell(tmplContent string) (*DocumentShell, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentShell{tmpl: tmpl}, nil
}

// Wrap places body, verbatim, inside the document's landing wrapper.
// The body is trusted: widget text is emitted raw.
func (s *DocumentShell) Wrap(ctx context.Context, body string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	data := documentData{
		Stylesheet: StylesheetHref,
		Body:       template.HTML(body), // #nosec G203 -- page content is caller-trusted
	}
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}
