package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-elem2keitaro/internal/media"
	"github.com/alnah/go-elem2keitaro/internal/metrics"
	"github.com/alnah/go-elem2keitaro/internal/node"
)

// MaxDepth bounds tree nesting. Real page-builder exports stay far below it.
const MaxDepth = 256

// defaultColumnSize is the column width, in percent, when none is set.
const defaultColumnSize = 100

// Renderer renders nodes against one conversion's asset map.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	assets   media.Map
	logger   zerolog.Logger
	recorder metrics.Recorder
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for fallback notices.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New creates a Renderer. assets may be nil, in which case every image keeps
// its remote URL.
func New(assets media.Map, opts ...Option) *Renderer {
	r := &Renderer{
		assets:   assets,
		logger:   zerolog.Nop(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a node sequence, concatenating fragments in input order.
func (r *Renderer) Render(nodes []node.Node) (string, error) {
	return r.renderChildren(nodes, 0)
}

// RenderNode renders a single node and its subtree.
func (r *Renderer) RenderNode(n node.Node) (string, error) {
	return r.renderNode(n, 0)
}

func (r *Renderer) renderNode(n node.Node, depth int) (string, error) {
	if depth >= MaxDepth {
		return "", fmt.Errorf("%w (%d) at node %q", ErrMaxDepth, MaxDepth, n.ID)
	}

	switch n.Kind {
	case node.KindSection:
		return r.section(n, depth)
	case node.KindColumn:
		return r.column(n, depth)
	case node.KindWidget:
		return r.RenderWidget(n), nil
	case node.KindContainer:
		return r.container(n, depth)
	default:
		r.logger.Debug().Str("id", n.ID).Str("kind", string(n.Kind)).Msg("unknown node kind, rendering as container")
		r.recorder.IncUnknownKind("node", string(n.Kind))
		return r.container(n, depth)
	}
}

func (r *Renderer) renderChildren(children []node.Node, depth int) (string, error) {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		s, err := r.renderNode(c, depth)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n"), nil
}

func (r *Renderer) section(n node.Node, depth int) (string, error) {
	s := n.Settings
	var style declarations

	bgType := textOr(s, "classic", "background_background")
	if bgType == "classic" {
		if color := s.First("background_color"); color != "" {
			style.add("background-color", color)
		}
	}

	if bg := media.BackgroundURL(s); bg != "" {
		style.add("background-image", cssURL(r.assets.Rewrite(bg)))
		style.raw("background-size: cover; background-position: center; background-repeat: no-repeat;")
	}

	if pad := s.Map("padding"); pad != nil {
		style.add("padding", paddingShorthand(pad))
	} else {
		style.add("padding", defaultPadTop+"px "+defaultPadRight+"px")
	}

	children, err := r.renderChildren(n.Children, depth+1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<section class="keitaro-section" style="%s" data-keitaro-section="true">`, attr(style.String()))
	b.WriteString("\n<div class=\"keitaro-container\">\n<div class=\"keitaro-row\">\n")
	b.WriteString(children)
	b.WriteString("\n</div>\n</div>\n</section>")
	return b.String(), nil
}

func (r *Renderer) column(n node.Node, depth int) (string, error) {
	s := n.Settings
	style := declarations{"min-height: 1px;", "position: relative;"}
	if color := s.First("background_color"); color != "" {
		style.add("background-color", color)
	}

	children, err := r.renderChildren(n.Children, depth+1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="keitaro-column keitaro-col-%d" style="%s" data-keitaro-column="true">`,
		columnSize(s), attr(style.String()))
	b.WriteString("\n")
	b.WriteString(children)
	b.WriteString("\n</div>")
	return b.String(), nil
}

func (r *Renderer) container(n node.Node, depth int) (string, error) {
	children, err := r.renderChildren(n.Children, depth+1)
	if err != nil {
		return "", err
	}
	return "<div class=\"keitaro-container\" data-keitaro-container=\"true\">\n" + children + "\n</div>", nil
}

// columnSize returns the integer column width in percent.
// Fractional widths (33.3) are truncated; missing or invalid widths use 100.
func columnSize(s node.Settings) int {
	f, ok := s.Get("_column_size").Number()
	if !ok || f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return defaultColumnSize
	}
	if f > defaultColumnSize {
		return defaultColumnSize
	}
	return int(f)
}
