package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-elem2keitaro/internal/node"
)

// Platform macros substituted by Keitaro at request time. They are emitted
// verbatim.
const (
	MacroOfferName        = "{offer_name}"
	MacroOfferURL         = "{offer_url}"
	MacroOfferDescription = "{offer_description}"
	MacroCampaignName     = "{campaign_name}"
)

// Widget defaults.
const (
	defaultHeadingTag   = "h2"
	defaultHeadingColor = "#000000"
	defaultTextColor    = "#333333"
	defaultButtonText   = "COMPRAR AGORA"
	defaultButtonBG     = "#ff6600"
	defaultButtonColor  = "#ffffff"
	defaultSpacerHeight = "30"
	defaultDividerColor = "#e0e0e0"
	defaultDividerSize  = "1"
)

// headingTags lists the tags a heading widget may render as.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "span": true,
}

// WidgetKind resolves the widget kind: the node's own tag, then a
// settings-embedded widgetType, then "text".
func WidgetKind(n node.Node) string {
	if n.WidgetKind != "" {
		return n.WidgetKind
	}
	return textOr(n.Settings, "text", "widgetType")
}

// RenderWidget renders one widget node. It never fails: unknown kinds produce
// a labeled placeholder.
func (r *Renderer) RenderWidget(n node.Node) string {
	s := n.Settings
	switch kind := WidgetKind(n); kind {
	case "heading":
		return heading(s)
	case "text", "text-editor":
		return text(s)
	case "button":
		return button(s)
	case "image":
		return r.image(s)
	case "video":
		return video(s)
	case "spacer":
		return spacer(s)
	case "divider":
		return divider(s)
	default:
		r.logger.Debug().Str("id", n.ID).Str("widget", kind).Msg("unknown widget kind, rendering placeholder")
		r.recorder.IncUnknownKind("widget", kind)
		return placeholder(kind)
	}
}

func heading(s node.Settings) string {
	title := textOr(s, MacroOfferName, "title", "heading_title")
	tag := strings.ToLower(textOr(s, defaultHeadingTag, "header_size", "size"))
	if !headingTags[tag] {
		tag = defaultHeadingTag
	}
	align := textOr(s, "center", "align")
	color := textOr(s, defaultHeadingColor, "title_color")

	return fmt.Sprintf(`<%s class="keitaro-heading keitaro-headline" style="text-align: %s; color: %s; margin: 0 0 20px 0; font-weight: bold;" data-keitaro-element="heading">%s</%s>`,
		tag, attr(align), attr(color), title, tag)
}

func text(s node.Settings) string {
	content := textOr(s, MacroOfferDescription, "editor", "text")
	align := textOr(s, "left", "align")
	color := textOr(s, defaultTextColor, "text_color")

	return fmt.Sprintf(`<div class="keitaro-text keitaro-content" style="text-align: %s; color: %s; line-height: 1.6; margin: 0 0 20px 0;" data-keitaro-element="text">%s</div>`,
		attr(align), attr(color), content)
}

func button(s node.Settings) string {
	label := textOr(s, defaultButtonText, "text", "button_text")
	href := pathOr(s, "", "link", "url")
	if href == "" {
		href = textOr(s, MacroOfferURL, "button_link")
	}
	align := textOr(s, "center", "align")
	bg := textOr(s, defaultButtonBG, "background_color")
	color := textOr(s, defaultButtonColor, "button_text_color")

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="keitaro-button-container" style="text-align: %s; margin: 30px 0;" data-keitaro-element="button">`, attr(align))
	fmt.Fprintf(&b, `<a href="%s" class="keitaro-button keitaro-cta" style="display: inline-block; background-color: %s; color: %s; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 18px; text-transform: uppercase; box-shadow: 0 4px 8px rgba(0,0,0,0.2); transition: all 0.3s ease;" onclick="keitaroConversion('button_click')" data-keitaro-action="click">`,
		attr(href), attr(bg), attr(color))
	b.WriteString(label)
	b.WriteString("</a></div>")
	return b.String()
}

func (r *Renderer) image(s node.Settings) string {
	src := pathOr(s, "", "image", "url")
	if src == "" {
		src = s.First("src")
	}
	if src == "" {
		return ""
	}
	src = r.assets.Rewrite(src)
	alt := pathOr(s, "", "image", "alt")
	if alt == "" {
		alt = textOr(s, MacroOfferName, "alt")
	}
	align := textOr(s, "center", "align")

	return fmt.Sprintf(`<div class="keitaro-image" style="text-align: %s; margin: 20px 0;" data-keitaro-element="image"><img src="%s" alt="%s" style="max-width: 100%%; height: auto; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);" loading="lazy" /></div>`,
		attr(align), attr(src), attr(alt))
}

func video(s node.Settings) string {
	raw := s.First("youtube_url", "video_url", "vimeo_url")
	if raw == "" {
		return ""
	}
	align := textOr(s, "center", "align")

	return fmt.Sprintf(`<div class="keitaro-video" style="text-align: %s; margin: 30px 0;" data-keitaro-element="video"><div style="position: relative; padding-bottom: 56.25%%; height: 0; overflow: hidden; border-radius: 8px; box-shadow: 0 4px 15px rgba(0,0,0,0.2);"><iframe src="%s" style="position: absolute; top: 0; left: 0; width: 100%%; height: 100%%; border: none;" allowfullscreen loading="lazy"></iframe></div></div>`,
		attr(align), attr(EmbedURL(raw)))
}

// EmbedURL rewrites a video page URL into the host's embeddable form.
// YouTube: "watch?v=" becomes "embed/" and "youtu.be/" becomes
// "youtube.com/embed/". Vimeo pages on vimeo.com or www.vimeo.com become
// https://player.vimeo.com/video/<id>, where id is the last numeric path
// segment. Other URLs, and Vimeo pages without an id, are returned unchanged.
func EmbedURL(raw string) string {
	if strings.Contains(raw, "youtube.com") || strings.Contains(raw, "youtu.be") {
		out := strings.Replace(raw, "watch?v=", "embed/", 1)
		return strings.Replace(out, "youtu.be/", "youtube.com/embed/", 1)
	}
	if id, ok := vimeoID(raw); ok {
		return "https://player.vimeo.com/video/" + id
	}
	return raw
}

// vimeoID extracts the numeric video id from a vimeo.com page URL, including
// channel and group paths such as /channels/staffpicks/76979871.
func vimeoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Hostname()) {
	case "vimeo.com", "www.vimeo.com":
	default:
		return "", false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if isDigits(segs[i]) {
			return segs[i], true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func spacer(s node.Settings) string {
	height := pathOr(s, "", "space", "size")
	if height == "" {
		height = textOr(s, defaultSpacerHeight, "height")
	}
	return fmt.Sprintf(`<div class="keitaro-spacer" style="height: %spx; width: 100%%;" data-keitaro-element="spacer"></div>`, attr(height))
}

func divider(s node.Settings) string {
	color := textOr(s, defaultDividerColor, "color")
	weight := pathOr(s, defaultDividerSize, "weight", "size")
	return fmt.Sprintf(`<hr class="keitaro-divider" style="border: none; border-top: %spx solid %s; margin: 30px 0; opacity: 0.6;" data-keitaro-element="divider" />`,
		attr(weight), attr(color))
}

func placeholder(kind string) string {
	k := attr(kind)
	return fmt.Sprintf(`<div class="keitaro-widget keitaro-widget-%s" data-keitaro-element="widget" data-widget-type="%s"><!-- %s widget placeholder --><div style="padding: 20px; background: #f5f5f5; border-radius: 8px; text-align: center; color: #666;">Widget: %s</div></div>`,
		k, k, strings.ReplaceAll(kind, "--", "- -"), k)
}
