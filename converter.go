package elem2keitaro

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-elem2keitaro/internal/assets"
	"github.com/alnah/go-elem2keitaro/internal/media"
	"github.com/alnah/go-elem2keitaro/internal/metrics"
	"github.com/alnah/go-elem2keitaro/internal/node"
	"github.com/alnah/go-elem2keitaro/internal/pipeline"
	"github.com/alnah/go-elem2keitaro/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.DocumentWrapper   = (*pipeline.DocumentShell)(nil)
	_ pipeline.ErrorPageRenderer = (*pipeline.ErrorPage)(nil)
	_ assets.AssetLoader         = (*assets.AssetResolver)(nil)
	_ metrics.Recorder           = (*metrics.PrometheusRecorder)(nil)
)

// Converter turns page-builder documents into landing-page bundles.
// Create with NewConverter. A Converter holds no per-call state and is safe
// for concurrent use; each call owns its asset map.
type Converter struct {
	cfg        converterConfig
	resolver   *media.Resolver
	shell      pipeline.DocumentWrapper
	errorPage  pipeline.ErrorPageRenderer
	stylesheet string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			logger:   zerolog.Nop(),
			recorder: metrics.NoopRecorder{},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	css, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	c.stylesheet = css

	// Create wrappers from template content (if not injected by tests)
	if c.shell == nil {
		tmpl, err := loader.LoadTemplate(assets.DocumentTemplateName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
		}
		if c.shell, err = pipeline.NewDocumentShell(tmpl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
		}
	}

	tmpl, err := loader.LoadTemplate(assets.ErrorTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	if c.errorPage, err = pipeline.NewErrorPage(tmpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	client := c.cfg.client
	if client == nil {
		client = &http.Client{Timeout: c.cfg.fetchTimeout}
	}
	c.resolver = media.NewResolver(
		media.WithHTTPClient(client),
		media.WithLogger(c.cfg.logger),
		media.WithRecorder(c.cfg.recorder),
		media.WithUserAgent(c.cfg.userAgent),
		media.WithMaxConcurrent(c.cfg.maxFetches),
	)

	return c, nil
}

// Stylesheet returns the stylesheet bundles from this converter carry: the
// built-in one, or its override from WithAssetPath.
func (c *Converter) Stylesheet() string {
	return c.stylesheet
}

// ConvertJSON decodes data and converts the result. Invalid JSON yields an
// error-page bundle whose Err wraps ErrDecode.
func (c *Converter) ConvertJSON(ctx context.Context, data []byte) *Bundle {
	doc, err := node.Decode(data)
	if err != nil {
		start := time.Now()
		log := c.cfg.logger.With().Str("conversion_id", uuid.NewString()).Logger()
		return c.finish(log, start, nil, err)
	}
	return c.Convert(ctx, doc)
}

// Convert converts a parsed JSON document (the value produced by
// encoding/json-style decoding into any). It never returns nil and never
// panics: fatal errors, including recovered panics, produce an error-page
// bundle. Individual image fetch failures are not fatal; the affected images
// keep their remote URLs.
func (c *Converter) Convert(ctx context.Context, doc any) *Bundle {
	start := time.Now()
	log := c.cfg.logger.With().Str("conversion_id", uuid.NewString()).Logger()
	log.Debug().Msg("conversion started")

	b, err := c.convert(ctx, doc, log)
	return c.finish(log, start, b, err)
}

func (c *Converter) convert(ctx context.Context, doc any, log zerolog.Logger) (b *Bundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	nodes := node.Normalize(doc)
	log.Debug().Int("top_level_nodes", len(nodes)).Msg("document normalized")

	fetched := c.resolver.Resolve(ctx, nodes)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r := render.New(fetched, render.WithLogger(log), render.WithRecorder(c.cfg.recorder))
	body, err := r.Render(nodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	page, err := c.shell.Wrap(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return &Bundle{HTML: page, CSS: c.stylesheet, Assets: fetched}, nil
}

// finish records the outcome and substitutes the error page on failure.
func (c *Converter) finish(log zerolog.Logger, start time.Time, b *Bundle, err error) *Bundle {
	c.cfg.recorder.ObserveConversionDuration(time.Since(start))

	if err != nil {
		c.cfg.recorder.IncConversion(metrics.ConversionFailed)
		log.Error().Err(err).Msg("conversion failed")
		return &Bundle{
			HTML:   c.errorPage.Render(err.Error()),
			Assets: map[string]Asset{},
			Err:    err,
		}
	}

	c.cfg.recorder.IncConversion(metrics.ConversionSuccess)
	log.Info().Int("assets", len(b.Assets)).Dur("elapsed", time.Since(start)).Msg("conversion finished")
	return b
}
