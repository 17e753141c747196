package media

// AssetDir is the bundle-relative directory holding fetched images.
const AssetDir = "img"

// Asset is a fetched copy of a remote image.
type Asset struct {
	URL         string // original reference, unique key
	Filename    string // last path segment of URL
	ContentType string // as reported by the server, may be empty
	Content     []byte
}

// LocalPath returns the bundle-relative path the asset is written to.
func (a Asset) LocalPath() string {
	return AssetDir + "/" + a.Filename
}

// Map holds fetched assets keyed by original URL.
type Map map[string]Asset

// LocalPath returns the bundle-relative path for rawURL, if it was fetched
// under a usable file name.
func (m Map) LocalPath(rawURL string) (string, bool) {
	a, ok := m[rawURL]
	if !ok || !UsableFileName(a.Filename) {
		return "", false
	}
	return a.LocalPath(), true
}

// Rewrite returns the local path for rawURL, or rawURL itself when the asset
// was not fetched.
func (m Map) Rewrite(rawURL string) string {
	if p, ok := m.LocalPath(rawURL); ok {
		return p
	}
	return rawURL
}
