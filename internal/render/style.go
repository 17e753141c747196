package render

import (
	"strings"

	"github.com/alnah/go-elem2keitaro/internal/node"
)

// attrEscaper escapes characters that would end a double-quoted attribute.
var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// attr escapes s for use inside a double-quoted attribute value.
func attr(s string) string {
	return attrEscaper.Replace(s)
}

// cssURL formats a url() value. Single quotes are percent-encoded so the
// URL cannot terminate the quoted argument.
func cssURL(u string) string {
	return "url('" + strings.ReplaceAll(u, "'", "%27") + "')"
}

// declarations accumulates inline CSS declarations in insertion order.
type declarations []string

func (d *declarations) add(property, value string) {
	*d = append(*d, property+": "+value+";")
}

func (d *declarations) raw(decl string) {
	*d = append(*d, decl)
}

func (d declarations) String() string {
	return strings.Join(d, " ")
}

// Default section padding, in pixels.
const (
	defaultPadTop    = "20"
	defaultPadRight  = "15"
	defaultPadBottom = "20"
	defaultPadLeft   = "15"
)

// paddingShorthand builds a "top right bottom left" padding value from a
// dimension mapping. Missing or zero sides take the section defaults.
func paddingShorthand(p node.Settings) string {
	side := func(key, def string) string {
		return p.Get(key).TextOr(def) + "px"
	}
	return strings.Join([]string{
		side("top", defaultPadTop),
		side("right", defaultPadRight),
		side("bottom", defaultPadBottom),
		side("left", defaultPadLeft),
	}, " ")
}

// textOr returns the first truthy text among keys, or def.
func textOr(s node.Settings, def string, keys ...string) string {
	if v := s.First(keys...); v != "" {
		return v
	}
	return def
}

// pathOr returns the text at a nested path when truthy, or def.
func pathOr(s node.Settings, def string, keys ...string) string {
	return s.Path(keys...).TextOr(def)
}
