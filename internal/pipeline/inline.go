package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-elem2keitaro/internal/media"
)

// ErrInline indicates the document could not be parsed or rendered while
// inlining.
var ErrInline = errors.New("inlining failed")

// Inline folds a bundle into a single HTML document.
//
// Rewrites:
//   - link[rel=stylesheet][href=style.css]: replaced by a <style> element
//   - img[src]: local asset paths become data: URIs
//   - url() in style attributes: local asset paths become data: URIs
//
// Remote URLs (assets whose fetch failed) are left untouched. When the
// document has no stylesheet link, the CSS is appended to <head>.
func Inline(ctx context.Context, htmlContent, cssContent string, assets media.Map) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrInline, err)
	}

	in := &inliner{css: cssContent, uris: dataURIs(assets)}
	in.walk(doc)
	if !in.styled && cssContent != "" {
		in.appendStyle(doc)
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", fmt.Errorf("%w: rendering: %v", ErrInline, err)
	}
	return out, nil
}

// inliner carries one Inline call's state through the tree walk.
type inliner struct {
	css    string
	uris   map[string]string // local path -> data URI
	styled bool
}

func (in *inliner) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch {
			case c.DataAtom == atom.Link && isStylesheetLink(c):
				n.InsertBefore(styleNode(in.css), c)
				n.RemoveChild(c)
				in.styled = true
				c = next
				continue
			case c.DataAtom == atom.Img:
				in.rewriteSrc(c)
			}
			in.rewriteStyleAttr(c)
		}
		in.walk(c)
		c = next
	}
}

func (in *inliner) rewriteSrc(n *html.Node) {
	for i, a := range n.Attr {
		if a.Key != "src" {
			continue
		}
		if uri, ok := in.uris[a.Val]; ok {
			n.Attr[i].Val = uri
		}
	}
}

func (in *inliner) rewriteStyleAttr(n *html.Node) {
	for i, a := range n.Attr {
		if a.Key == "style" && strings.Contains(a.Val, "url(") {
			n.Attr[i].Val = in.rewriteCSSURLs(a.Val)
		}
	}
}

// rewriteCSSURLs replaces url() tokens that name a local asset. Every other
// token is copied through unchanged.
func (in *inliner) rewriteCSSURLs(decls string) string {
	l := css.NewLexer(parse.NewInputString(decls))
	var b strings.Builder
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if l.Err() != io.EOF {
				return decls
			}
			break
		}
		if tt == css.URLToken {
			if uri, ok := in.uris[urlTokenValue(data)]; ok {
				b.WriteString("url('")
				b.WriteString(uri)
				b.WriteString("')")
				continue
			}
		}
		b.Write(data)
	}
	return b.String()
}

// urlTokenValue extracts the address from a url(...) token.
func urlTokenValue(tok []byte) string {
	s := string(tok)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return ""
	}
	s = strings.TrimSpace(s[open+1 : len(s)-1])
	return strings.Trim(s, `'"`)
}

func (in *inliner) appendStyle(doc *html.Node) {
	if head := findElement(doc, atom.Head); head != nil {
		head.AppendChild(styleNode(in.css))
		return
	}
	if doc.FirstChild != nil {
		doc.InsertBefore(styleNode(in.css), doc.FirstChild)
		return
	}
	doc.AppendChild(styleNode(in.css))
}

func isStylesheetLink(n *html.Node) bool {
	var rel, href string
	for _, a := range n.Attr {
		switch a.Key {
		case "rel":
			rel = strings.ToLower(a.Val)
		case "href":
			href = a.Val
		}
	}
	return rel == "stylesheet" && href == StylesheetHref
}

func styleNode(cssContent string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: sanitizeCSS(cssContent)})
	return n
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}

// dataURIs maps each asset's local path to a base64 data URI.
func dataURIs(assets media.Map) map[string]string {
	uris := make(map[string]string, len(assets))
	for _, a := range assets {
		if !media.UsableFileName(a.Filename) {
			continue
		}
		uris[a.LocalPath()] = "data:" + mediaType(a) + ";base64," + base64.StdEncoding.EncodeToString(a.Content)
	}
	return uris
}

// mediaType picks the asset's MIME type: the server's header, then the file
// extension, then content sniffing. Parameters are dropped.
func mediaType(a media.Asset) string {
	candidates := []string{a.ContentType, mime.TypeByExtension(path.Ext(a.Filename))}
	for _, c := range candidates {
		if mt, _, err := mime.ParseMediaType(c); err == nil && mt != "" {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(a.Content))
	return mt
}

// parseHTML parses HTML content, handling both full documents and fragments.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragments parse in body context so no wrapper is added.
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render only their
// children.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
