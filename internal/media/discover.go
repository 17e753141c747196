package media

import "github.com/alnah/go-elem2keitaro/internal/node"

// Discover returns every distinct image URL referenced in the tree, in
// first-seen depth-first order. Widgets whose widgetType is "image"
// contribute settings.image.url; any node contributes
// settings.background_image.url.
func Discover(nodes []node.Node) []string {
	seen := make(map[string]struct{})
	var urls []string

	add := func(u string) {
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	node.Walk(nodes, func(n node.Node) bool {
		// Only the node's own widgetType counts here. An image typed solely
		// through settings.widgetType still renders, with its remote URL.
		if n.IsWidget() && n.WidgetKind == "image" {
			add(ImageURL(n.Settings))
		}
		add(BackgroundURL(n.Settings))
		return true
	})

	return urls
}

// ImageURL returns the image widget URL carried by settings, or "".
func ImageURL(s node.Settings) string {
	return s.Path("image", "url").TextOr("")
}

// BackgroundURL returns the background image URL carried by settings, or "".
func BackgroundURL(s node.Settings) string {
	return s.Path("background_image", "url").TextOr("")
}
