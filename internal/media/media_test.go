package media

// Notes:
// - Resolver tests run against httptest servers; no external network access.
// - countingRecorder is a hand-written fake; metrics are asserted by outcome.
// - FileName collisions are documented behavior, so a test pins them.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-elem2keitaro/internal/metrics"
	"github.com/alnah/go-elem2keitaro/internal/node"
)

func decodeNodes(t *testing.T, doc string) []node.Node {
	t.Helper()
	v, err := node.Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return node.Normalize(v)
}

// ---------------------------------------------------------------------------
// TestDiscover - URL discovery and deduplication
// ---------------------------------------------------------------------------

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "image widget",
			doc:  `[{"elType":"widget","widgetType":"image","settings":{"image":{"url":"https://x.test/a.png"}}}]`,
			want: []string{"https://x.test/a.png"},
		},
		{
			name: "section background",
			doc:  `[{"elType":"section","settings":{"background_image":{"url":"https://x.test/bg.jpg"}}}]`,
			want: []string{"https://x.test/bg.jpg"},
		},
		{
			name: "widget and background share a URL",
			doc: `[{"elType":"section","settings":{"background_image":{"url":"https://x.test/a.png"}},"elements":[
				{"elType":"widget","widgetType":"image","settings":{"image":{"url":"https://x.test/a.png"}}}]}]`,
			want: []string{"https://x.test/a.png"},
		},
		{
			name: "non-image widget url ignored",
			doc:  `[{"elType":"widget","widgetType":"heading","settings":{"image":{"url":"https://x.test/no.png"}}}]`,
			want: nil,
		},
		{
			name: "image widget with background collects both",
			doc: `[{"elType":"widget","widgetType":"image","settings":{
				"image":{"url":"https://x.test/a.png"},"background_image":{"url":"https://x.test/b.png"}}}]`,
			want: []string{"https://x.test/a.png", "https://x.test/b.png"},
		},
		{
			name: "nested depth first",
			doc: `[{"elType":"section","elements":[{"elType":"column","elements":[
				{"elType":"widget","widgetType":"image","settings":{"image":{"url":"https://x.test/1.png"}}}]},
				{"elType":"column","settings":{"background_image":{"url":"https://x.test/2.png"}}}]}]`,
			want: []string{"https://x.test/1.png", "https://x.test/2.png"},
		},
		{
			name: "empty url ignored",
			doc:  `[{"elType":"widget","widgetType":"image","settings":{"image":{"url":""}}}]`,
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := decodeNodes(t, tt.doc)
			got := Discover(nodes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
			if again := Discover(nodes); !reflect.DeepEqual(again, got) {
				t.Errorf("Discover() not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestDiscover_WidgetTypeFromSettingsIgnored(t *testing.T) {
	t.Parallel()

	nodes := decodeNodes(t, `[{"elType":"widget","settings":{"widgetType":"image","image":{"url":"https://x.test/a.png"}}}]`)
	if got := Discover(nodes); len(got) != 0 {
		t.Errorf("Discover() = %v, want no URLs for an image typed only in settings", got)
	}
}

// ---------------------------------------------------------------------------
// TestFileName - Local name derivation
// ---------------------------------------------------------------------------

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/wp-content/uploads/2024/hero.jpg", "hero.jpg"},
		{"https://cdn.example.com/img/logo.png?ver=3#frag", "logo.png"},
		{"https://cdn.example.com/", ""},
		{"relative/path/photo.webp", "photo.webp"},
		{"photo.webp", "photo.webp"},
		{"http://[::1]:namedport/x.png", "x.png"},
	}

	for _, tt := range tests {
		if got := FileName(tt.url); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestFileName_CollisionNotDisambiguated(t *testing.T) {
	t.Parallel()

	a := FileName("https://one.example.com/a/logo.png")
	b := FileName("https://two.example.com/b/logo.png")
	if a != b {
		t.Errorf("FileName() = %q and %q, want identical names", a, b)
	}
}

func TestUsableFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"hero.jpg", true},
		{"..hidden.png", true},
		{"", false},
		{".", false},
		{"..", false},
		{`a\b.png`, false},
		{"a/b.png", false},
	}

	for _, tt := range tests {
		if got := UsableFileName(tt.name); got != tt.want {
			t.Errorf("UsableFileName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestResolver - Concurrent fetching
// ---------------------------------------------------------------------------

type countingRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes map[metrics.FetchOutcome]int
}

func (c *countingRecorder) IncFetchResult(o metrics.FetchOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = make(map[metrics.FetchOutcome]int)
	}
	c.outcomes[o]++
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("PNGDATA"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	okURL := srv.URL + "/ok.png"
	missingURL := srv.URL + "/missing.png"
	doc := `[{"elType":"section","settings":{"background_image":{"url":"` + okURL + `"}},"elements":[
		{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + okURL + `"}}},
		{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + missingURL + `"}}}]}]`

	rec := &countingRecorder{}
	r := NewResolver(WithHTTPClient(srv.Client()), WithRecorder(rec))
	got := r.Resolve(context.Background(), decodeNodes(t, doc))

	if len(got) != 1 {
		t.Fatalf("Resolve() returned %d assets, want 1: %v", len(got), got)
	}
	a, ok := got[okURL]
	if !ok {
		t.Fatalf("asset for %s missing", okURL)
	}
	if string(a.Content) != "PNGDATA" || a.Filename != "ok.png" || a.ContentType != "image/png" {
		t.Errorf("asset = %+v", a)
	}
	if _, ok := got[missingURL]; ok {
		t.Error("failed fetch should be omitted")
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2 (deduplicated)", n)
	}
	if rec.outcomes[metrics.FetchSuccess] != 1 || rec.outcomes[metrics.FetchHTTPError] != 1 {
		t.Errorf("recorded outcomes = %v", rec.outcomes)
	}
}

func TestResolver_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL + "/gone.png"
	srv.Close()

	rec := &countingRecorder{}
	r := NewResolver(WithRecorder(rec))
	got := r.Resolve(context.Background(), decodeNodes(t,
		`[{"elType":"widget","widgetType":"image","settings":{"image":{"url":"`+deadURL+`"}}}]`))

	if len(got) != 0 {
		t.Errorf("Resolve() = %v, want empty map", got)
	}
	if rec.outcomes[metrics.FetchTransport] != 1 {
		t.Errorf("recorded outcomes = %v", rec.outcomes)
	}
}

func TestResolver_UnusableFileName(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	dotURL := srv.URL + "/%2e%2e"
	dirURL := srv.URL + "/images/"
	okURL := srv.URL + "/images/ok.png"
	doc := `[{"elType":"section","settings":{"background_image":{"url":"` + dirURL + `"}},"elements":[
		{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + dotURL + `"}}},
		{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + okURL + `"}}}]}]`

	got := NewResolver(WithHTTPClient(srv.Client())).Resolve(context.Background(), decodeNodes(t, doc))

	if len(got) != 1 {
		t.Fatalf("Resolve() returned %d assets, want 1: %v", len(got), got)
	}
	if _, ok := got[okURL]; !ok {
		t.Errorf("asset for %s missing", okURL)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
	for _, u := range []string{dotURL, dirURL} {
		if rewritten := got.Rewrite(u); rewritten != u {
			t.Errorf("Rewrite(%q) = %q, want remote URL kept", u, rewritten)
		}
	}
}

func TestResolver_FetchesConcurrently(t *testing.T) {
	t.Parallel()

	const n = 4
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		if cur == n {
			close(release)
		}
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		inFlight.Add(-1)
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	doc := `[`
	for i := 0; i < n; i++ {
		if i > 0 {
			doc += ","
		}
		doc += `{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + srv.URL + `/` + string(rune('a'+i)) + `.png"}}}`
	}
	doc += `]`

	got := NewResolver(WithHTTPClient(srv.Client())).Resolve(context.Background(), decodeNodes(t, doc))
	if len(got) != n {
		t.Fatalf("Resolve() returned %d assets, want %d", len(got), n)
	}
	if peak.Load() != n {
		t.Errorf("peak concurrency = %d, want %d", peak.Load(), n)
	}
}

func TestResolver_MaxConcurrent(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	doc := `[`
	for i := 0; i < 6; i++ {
		if i > 0 {
			doc += ","
		}
		doc += `{"elType":"widget","widgetType":"image","settings":{"image":{"url":"` + srv.URL + `/` + string(rune('a'+i)) + `.png"}}}`
	}
	doc += `]`

	got := NewResolver(WithHTTPClient(srv.Client()), WithMaxConcurrent(1)).Resolve(context.Background(), decodeNodes(t, doc))
	if len(got) != 6 {
		t.Fatalf("Resolve() returned %d assets, want 6", len(got))
	}
	if peak.Load() != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak.Load())
	}
}

func TestResolver_NoImages(t *testing.T) {
	t.Parallel()

	got := NewResolver().Resolve(context.Background(), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Resolve(nil) = %v, want empty non-nil map", got)
	}
}

// ---------------------------------------------------------------------------
// TestMap - Path rewriting
// ---------------------------------------------------------------------------

func TestMap_Rewrite(t *testing.T) {
	t.Parallel()

	m := Map{"https://x.test/a/hero.jpg": {URL: "https://x.test/a/hero.jpg", Filename: "hero.jpg"}}

	if got := m.Rewrite("https://x.test/a/hero.jpg"); got != "img/hero.jpg" {
		t.Errorf("Rewrite(fetched) = %q, want img/hero.jpg", got)
	}
	if got := m.Rewrite("https://x.test/other.jpg"); got != "https://x.test/other.jpg" {
		t.Errorf("Rewrite(missing) = %q, want original URL", got)
	}
	var empty Map
	if got := empty.Rewrite("u"); got != "u" {
		t.Errorf("nil Map Rewrite = %q", got)
	}
}

func TestMap_RewriteUnusableName(t *testing.T) {
	t.Parallel()

	m := Map{
		"https://x.test/%2e%2e": {URL: "https://x.test/%2e%2e", Filename: ".."},
		"https://x.test/dir/":   {URL: "https://x.test/dir/", Filename: ""},
	}

	for u := range m {
		if p, ok := m.LocalPath(u); ok {
			t.Errorf("LocalPath(%q) = %q, want no local path", u, p)
		}
		if got := m.Rewrite(u); got != u {
			t.Errorf("Rewrite(%q) = %q, want original URL", u, got)
		}
	}
}
