package media

import (
	"net/url"
	"strings"
)

// FileName derives a local file name from rawURL: the part of the URL path
// after its last "/". Inputs that are not absolute URLs fall back to the raw
// string after its last "/".
//
// Distinct URLs may share a file name; callers writing assets to one folder
// must handle the collision.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return rawURL[strings.LastIndex(rawURL, "/")+1:]
	}
	p := u.Path
	return p[strings.LastIndex(p, "/")+1:]
}

// UsableFileName reports whether name can be written as a single entry under
// AssetDir. Empty names, dot segments and names holding a path separator are
// rejected.
func UsableFileName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
