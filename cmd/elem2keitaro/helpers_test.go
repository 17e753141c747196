package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// newTestEnv returns an Environment writing to buffers.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := DefaultEnv()
	env.Stdout = &stdout
	env.Stderr = &stderr
	return env, &stdout, &stderr
}

// queryPage parses a written page so assertions see decoded attribute values.
func queryPage(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// mockConverter records inputs and returns canned bundles.
type mockConverter struct {
	mu     sync.Mutex
	inputs []string
	bundle func(data []byte) *elem2keitaro.Bundle
}

func newMockConverter() *mockConverter {
	return &mockConverter{
		bundle: func(data []byte) *elem2keitaro.Bundle {
			return &elem2keitaro.Bundle{
				HTML:   "<html><body>" + string(data) + "</body></html>",
				CSS:    "body{}",
				Assets: map[string]elem2keitaro.Asset{},
			}
		},
	}
}

func (m *mockConverter) ConvertJSON(_ context.Context, data []byte) *elem2keitaro.Bundle {
	m.mu.Lock()
	m.inputs = append(m.inputs, string(data))
	m.mu.Unlock()
	return m.bundle(data)
}

func (m *mockConverter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// recordingWriter remembers where bundles were written.
type recordingWriter struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (w *recordingWriter) Write(_ context.Context, _ *elem2keitaro.Bundle, outPath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths = append(w.paths, outPath)
	return w.err
}
