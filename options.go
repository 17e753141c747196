package elem2keitaro

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alnah/go-elem2keitaro/internal/metrics"
	"github.com/alnah/go-elem2keitaro/internal/pipeline"
)

// Recorder receives pipeline metrics. Implementations must be safe for
// concurrent use.
type Recorder = metrics.Recorder

// NewPrometheusRecorder registers the converter's collectors on reg and
// returns a Recorder feeding them. A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) Recorder {
	return metrics.NewPrometheusRecorder(reg)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds construction-time settings.
type converterConfig struct {
	logger       zerolog.Logger
	recorder     Recorder
	client       *http.Client
	fetchTimeout time.Duration
	maxFetches   int
	userAgent    string
	assetPath    string
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithRecorder sets the metrics recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.cfg.recorder = r
		}
	}
}

// WithHTTPClient sets the client used to fetch images.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) {
		c.cfg.client = client
	}
}

// WithFetchTimeout bounds each image fetch. It applies only to the default
// client; a client set with WithHTTPClient keeps its own timeout.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("elem2keitaro: WithFetchTimeout duration must not be negative")
	}
	return func(c *Converter) {
		c.cfg.fetchTimeout = d
	}
}

// WithMaxConcurrentFetches bounds simultaneous image fetches per conversion.
// Zero, the default, starts one fetch per image.
func WithMaxConcurrentFetches(n int) Option {
	return func(c *Converter) {
		c.cfg.maxFetches = n
	}
}

// WithUserAgent sets the User-Agent header sent to image hosts.
func WithUserAgent(ua string) Option {
	return func(c *Converter) {
		c.cfg.userAgent = ua
	}
}

// WithAssetPath overrides built-in assets from a directory containing
// styles/keitaro.css and/or templates/{document,error}.html. Missing files
// fall back to the built-in versions.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// withShell injects a document wrapper (tests).
func withShell(w pipeline.DocumentWrapper) Option {
	return func(c *Converter) {
		c.shell = w
	}
}
