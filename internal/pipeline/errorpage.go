package pipeline

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode"
)

// ErrorPageTitle heads every error page.
const ErrorPageTitle = "Landing page conversion failed"

// ErrorPageRenderer defines the contract for rendering a conversion failure.
type ErrorPageRenderer interface {
	Render(message string) string
}

type errorPageData struct {
	Title   string
	Message string
}

// ErrorPage renders the standalone document shown in place of a landing page
// when conversion fails.
type ErrorPage struct {
	tmpl *template.Template
}

// NewErrorPage creates an ErrorPage from template content.
// Returns error if the template cannot be parsed.
func NewErrorPage(tmplContent string) (*ErrorPage, error) {
	tmpl, err := template.New("error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing error template: %w", err)
	}
	return &ErrorPage{tmpl: tmpl}, nil
}

// Render returns the error page for message. The message is HTML-escaped and
// control characters other than newlines and tabs are dropped.
// It never fails: if the template cannot execute, a minimal page carrying
// the same message is returned.
func (p *ErrorPage) Render(message string) string {
	message = printable(message)
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, errorPageData{Title: ErrorPageTitle, Message: message}); err != nil {
		return minimalErrorPage(message)
	}
	return buf.String()
}

func minimalErrorPage(message string) string {
	return "<!DOCTYPE html>\n<html>\n<head><meta charset=\"UTF-8\"><title>" + ErrorPageTitle +
		"</title></head>\n<body>\n<h1>" + ErrorPageTitle + "</h1>\n<pre>" +
		html.EscapeString(message) + "</pre>\n</body>\n</html>\n"
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
