package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-elem2keitaro/internal/metrics"
	"github.com/alnah/go-elem2keitaro/internal/node"
)

// Sentinel errors for fetch failures. They are logged, never returned by Resolve.
var (
	ErrFetchStatus    = errors.New("unexpected response status")
	ErrFetchTransport = errors.New("request failed")
	ErrUnusableName   = errors.New("no usable file name in URL")
)

// DefaultUserAgent identifies the converter to image hosts.
const DefaultUserAgent = "go-elem2keitaro/1.0"

// Resolver fetches discovered images. The zero value is not usable; create
// with NewResolver. A Resolver is safe for concurrent use.
type Resolver struct {
	client        *http.Client
	logger        zerolog.Logger
	recorder      metrics.Recorder
	userAgent     string
	maxConcurrent int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each fetch.
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithMaxConcurrent bounds simultaneous fetches. Zero or less means one
// goroutine per URL.
func WithMaxConcurrent(n int) Option {
	return func(r *Resolver) { r.maxConcurrent = n }
}

// NewResolver creates a Resolver. The default client has no timeout and the
// default fan-out is unbounded.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client:    &http.Client{},
		logger:    zerolog.Nop(),
		recorder:  metrics.NoopRecorder{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve discovers every image URL in nodes and fetches them concurrently.
// It returns once every fetch has settled. The Map holds only successful
// fetches; failures are logged and omitted.
func (r *Resolver) Resolve(ctx context.Context, nodes []node.Node) Map {
	urls := Discover(nodes)
	assets := make(Map, len(urls))
	if len(urls) == 0 {
		return assets
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	if r.maxConcurrent > 0 {
		g.SetLimit(r.maxConcurrent)
	}

	for _, u := range urls {
		u := u
		g.Go(func() error {
			a, err := r.fetch(ctx, u)
			if err != nil {
				r.logger.Warn().Str("url", u).Err(err).Msg("asset fetch failed, keeping remote URL")
				return nil
			}
			mu.Lock()
			assets[u] = a
			mu.Unlock()
			return nil
		})
	}

	// Goroutines never return an error: a failed asset must not abort the rest.
	_ = g.Wait()

	r.logger.Debug().Int("discovered", len(urls)).Int("fetched", len(assets)).Msg("assets resolved")
	return assets
}

// fetch downloads a single URL. URLs whose file name cannot be stored under
// AssetDir are not requested.
func (r *Resolver) fetch(ctx context.Context, rawURL string) (Asset, error) {
	name := FileName(rawURL)
	if !UsableFileName(name) {
		return Asset{}, fmt.Errorf("%w: %q", ErrUnusableName, name)
	}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		r.observe(start, metrics.FetchTransport)
		return Asset{}, fmt.Errorf("%w: %v", ErrFetchTransport, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.observe(start, metrics.FetchTransport)
		return Asset{}, fmt.Errorf("%w: %v", ErrFetchTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		r.observe(start, metrics.FetchHTTPError)
		return Asset{}, fmt.Errorf("%w: %s", ErrFetchStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.observe(start, metrics.FetchTransport)
		return Asset{}, fmt.Errorf("%w: reading body: %v", ErrFetchTransport, err)
	}

	r.observe(start, metrics.FetchSuccess)
	return Asset{
		URL:         rawURL,
		Filename:    name,
		ContentType: resp.Header.Get("Content-Type"),
		Content:     body,
	}, nil
}

func (r *Resolver) observe(start time.Time, outcome metrics.FetchOutcome) {
	r.recorder.ObserveFetchDuration(time.Since(start), outcome)
	r.recorder.IncFetchResult(outcome)
}
