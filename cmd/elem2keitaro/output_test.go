package main

// Notes:
// - Writers are tested against hand-built bundles so the assertions do not
//   depend on renderer output.
// - zip archives are read back with the same compress library that wrote
//   them.

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
)

const samplePage = `<!DOCTYPE html><html><head><link rel="stylesheet" href="style.css"></head>` +
	`<body><div style="background-image: url('img/bg.jpg')"><img src="img/a.png" alt=""></div></body></html>`

func sampleBundle() *elem2keitaro.Bundle {
	return &elem2keitaro.Bundle{
		HTML: samplePage,
		CSS:  "body {  color: red; }",
		Assets: map[string]elem2keitaro.Asset{
			"https://cdn.example/a.png": {
				URL: "https://cdn.example/a.png", Filename: "a.png",
				ContentType: "image/png", Content: []byte("PNGDATA"),
			},
			"https://cdn.example/bg.jpg": {
				URL: "https://cdn.example/bg.jpg", Filename: "bg.jpg",
				ContentType: "image/jpeg", Content: []byte("JPGDATA"),
			},
		},
	}
}

func failedBundle() *elem2keitaro.Bundle {
	return &elem2keitaro.Bundle{
		HTML: "<!DOCTYPE html><html><body>broken</body></html>",
		Err:  elem2keitaro.ErrDecode,
	}
}

// ---------------------------------------------------------------------------
// TestNewBundleWriter
// ---------------------------------------------------------------------------

func TestNewBundleWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{config.FormatDir, "*main.dirWriter"},
		{config.FormatZip, "*main.zipWriter"},
		{config.FormatSingle, "*main.singleWriter"},
		{"", "*main.dirWriter"},
	}
	for _, tt := range tests {
		w := newBundleWriter(tt.format, false)
		var got string
		switch w.(type) {
		case *dirWriter:
			got = "*main.dirWriter"
		case *zipWriter:
			got = "*main.zipWriter"
		case *singleWriter:
			got = "*main.singleWriter"
		}
		if got != tt.want {
			t.Errorf("newBundleWriter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDirWriter
// ---------------------------------------------------------------------------

func TestDirWriter_Write(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "promo")
	if err := newBundleWriter(config.FormatDir, false).Write(context.Background(), sampleBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := map[string]string{
		"index.html": samplePage,
		"style.css":  "body {  color: red; }",
		"img/a.png":  "PNGDATA",
		"img/bg.jpg": "JPGDATA",
	}
	for name, content := range want {
		if got := readFile(t, filepath.Join(out, filepath.FromSlash(name))); got != content {
			t.Errorf("%s = %q, want %q", name, got, content)
		}
	}
}

func TestDirWriter_SkipsUnusableAssetNames(t *testing.T) {
	t.Parallel()

	b := sampleBundle()
	b.Assets["https://cdn.example/%2e%2e"] = elem2keitaro.Asset{
		URL: "https://cdn.example/%2e%2e", Filename: "..", Content: []byte("DOTDOT"),
	}
	b.Assets["https://cdn.example/images/"] = elem2keitaro.Asset{
		URL: "https://cdn.example/images/", Filename: "", Content: []byte("EMPTY"),
	}

	out := filepath.Join(t.TempDir(), "promo")
	if err := newBundleWriter(config.FormatDir, false).Write(context.Background(), b, out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := readFile(t, filepath.Join(out, "index.html")); got != samplePage {
		t.Errorf("index.html = %q", got)
	}
	entries, err := os.ReadDir(filepath.Join(out, "img"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if got := strings.Join(names, ","); got != "a.png,bg.jpg" {
		t.Errorf("img/ entries = %s, want a.png,bg.jpg", got)
	}
}

func TestDirWriter_Minify(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	if err := newBundleWriter(config.FormatDir, true).Write(context.Background(), sampleBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := readFile(t, filepath.Join(out, "style.css")); got != "body{color:red}" {
		t.Errorf("style.css = %q, want minified", got)
	}
	page := readFile(t, filepath.Join(out, "index.html"))
	if len(page) >= len(samplePage) {
		t.Errorf("index.html not minified: %q", page)
	}
	if !strings.Contains(page, "style.css") {
		t.Error("minified page lost the stylesheet link")
	}
}

func TestDirWriter_FailedBundle(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	if err := newBundleWriter(config.FormatDir, false).Write(context.Background(), failedBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !strings.Contains(readFile(t, filepath.Join(out, "index.html")), "broken") {
		t.Error("error page not written")
	}
	for _, name := range []string{"style.css", "img"} {
		if _, err := os.Stat(filepath.Join(out, name)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s should not exist for a failed bundle (err=%v)", name, err)
		}
	}
}

func TestDirWriter_Unwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := newBundleWriter(config.FormatDir, false).Write(context.Background(), sampleBundle(), filepath.Join(blocker, "out"))
	if !errors.Is(err, ErrWriteBundle) {
		t.Errorf("error = %v, want ErrWriteBundle", err)
	}
}

// ---------------------------------------------------------------------------
// TestZipWriter
// ---------------------------------------------------------------------------

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening zip: %v", err)
	}
	defer func() { _ = r.Close() }()

	entries := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestZipWriter_Write(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "promo.zip")
	if err := newBundleWriter(config.FormatZip, false).Write(context.Background(), sampleBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries := readZip(t, out)
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	if got := strings.Join(names, ","); got != "img/a.png,img/bg.jpg,index.html,style.css" {
		t.Errorf("entries = %s", got)
	}
	if entries["index.html"] != samplePage {
		t.Errorf("index.html = %q", entries["index.html"])
	}
	if entries["img/a.png"] != "PNGDATA" {
		t.Errorf("img/a.png = %q", entries["img/a.png"])
	}
}

func TestZipWriter_FailedBundle(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "broken.zip")
	if err := newBundleWriter(config.FormatZip, false).Write(context.Background(), failedBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries := readZip(t, out)
	if len(entries) != 1 || !strings.Contains(entries["index.html"], "broken") {
		t.Errorf("entries = %v, want index.html only", entries)
	}
}

// ---------------------------------------------------------------------------
// TestSingleWriter
// ---------------------------------------------------------------------------

func TestSingleWriter_Write(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "promo.html")
	if err := newBundleWriter(config.FormatSingle, false).Write(context.Background(), sampleBundle(), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	page := readFile(t, out)
	doc := queryPage(t, page)
	src, _ := doc.Find("img").Attr("src")
	style, _ := doc.Find("div").Attr("style")
	checks := []struct {
		name string
		ok   bool
	}{
		{"stylesheet link removed", !strings.Contains(page, `href="style.css"`)},
		{"css embedded", strings.Contains(page, "<style>body {  color: red; }</style>")},
		{"img inlined", strings.HasPrefix(src, "data:image/png;base64,")},
		{"background inlined", strings.Contains(style, "url('data:image/jpeg;base64,")},
		{"no local paths", !strings.Contains(page, "img/")},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("%s: %s", c.name, page)
		}
	}
}

func TestSingleWriter_Minify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.html")
	small := filepath.Join(dir, "small.html")
	if err := newBundleWriter(config.FormatSingle, false).Write(context.Background(), sampleBundle(), plain); err != nil {
		t.Fatal(err)
	}
	if err := newBundleWriter(config.FormatSingle, true).Write(context.Background(), sampleBundle(), small); err != nil {
		t.Fatal(err)
	}

	if len(readFile(t, small)) >= len(readFile(t, plain)) {
		t.Error("minified output is not smaller")
	}
}

func TestSingleWriter_FailedBundle(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "broken.html")
	b := failedBundle()
	if err := newBundleWriter(config.FormatSingle, false).Write(context.Background(), b, out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := readFile(t, out); got != b.HTML {
		t.Errorf("page = %q, want the error page unchanged", got)
	}
}

func TestSingleWriter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "promo.html")
	err := newBundleWriter(config.FormatSingle, false).Write(ctx, sampleBundle(), out)
	if !errors.Is(err, ErrWriteBundle) {
		t.Errorf("error = %v, want ErrWriteBundle", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("nothing should be written on cancellation")
	}
}
