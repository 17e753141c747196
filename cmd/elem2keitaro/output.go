package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zip"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
	"github.com/alnah/go-elem2keitaro/internal/fileutil"
	"github.com/alnah/go-elem2keitaro/internal/media"
	"github.com/alnah/go-elem2keitaro/internal/pipeline"
)

// BundleWriter persists a converted bundle at a resolved output path.
type BundleWriter interface {
	Write(ctx context.Context, b *elem2keitaro.Bundle, outPath string) error
}

// Compile-time interface implementation checks.
var (
	_ BundleWriter = (*dirWriter)(nil)
	_ BundleWriter = (*zipWriter)(nil)
	_ BundleWriter = (*singleWriter)(nil)
)

// newBundleWriter returns the writer for format. Unknown formats fall back to
// dir; config validation rejects them earlier.
func newBundleWriter(format string, minify bool) BundleWriter {
	var mf *pipeline.Minifier
	if minify {
		mf = pipeline.NewMinifier()
	}

	switch format {
	case config.FormatZip:
		return &zipWriter{minifier: mf}
	case config.FormatSingle:
		return &singleWriter{minifier: mf}
	default:
		return &dirWriter{minifier: mf}
	}
}

// bundleFile is one entry of a bundle's on-disk layout.
type bundleFile struct {
	name string // slash-separated, relative to the bundle root
	data []byte
}

// layout lists the files of b, optionally minified. A failed bundle is its
// error page alone.
func layout(b *elem2keitaro.Bundle, mf *pipeline.Minifier) ([]bundleFile, error) {
	page, css := b.HTML, b.CSS
	if mf != nil {
		var err error
		if page, err = mf.HTML(page); err != nil {
			return nil, err
		}
		if css, err = mf.CSS(css); err != nil {
			return nil, err
		}
	}

	files := []bundleFile{{name: elem2keitaro.HTMLFile, data: []byte(page)}}
	if b.Failed() {
		return files, nil
	}
	files = append(files, bundleFile{name: elem2keitaro.CSSFile, data: []byte(css)})

	urls := make([]string, 0, len(b.Assets))
	for u := range b.Assets {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	for _, u := range urls {
		a := b.Assets[u]
		if !media.UsableFileName(a.Filename) {
			continue
		}
		files = append(files, bundleFile{name: path.Join(elem2keitaro.AssetsDir, a.Filename), data: a.Content})
	}
	return files, nil
}

// ---------------------------------------------------------------------------
// dir
// ---------------------------------------------------------------------------

// dirWriter writes index.html, style.css and img/ into a directory.
type dirWriter struct {
	minifier *pipeline.Minifier
}

func (w *dirWriter) Write(_ context.Context, b *elem2keitaro.Bundle, outPath string) error {
	files, err := layout(b, w.minifier)
	if err != nil {
		return fmt.Errorf("%w: minifying: %v", ErrWriteBundle, err)
	}

	for _, f := range files {
		target := filepath.Join(outPath, filepath.FromSlash(f.name))
		if err := os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
			return fmt.Errorf("%w: creating directory: %v", ErrWriteBundle, err)
		}
		if err := fileutil.WriteFileAtomic(target, f.data, filePermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteBundle, target, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// zip
// ---------------------------------------------------------------------------

// zipWriter packs the directory layout into a single archive, ready for
// upload as a Keitaro landing page.
type zipWriter struct {
	minifier *pipeline.Minifier
}

func (w *zipWriter) Write(_ context.Context, b *elem2keitaro.Bundle, outPath string) error {
	files, err := layout(b, w.minifier)
	if err != nil {
		return fmt.Errorf("%w: minifying: %v", ErrWriteBundle, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("%w: zip entry %s: %v", ErrWriteBundle, f.name, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return fmt.Errorf("%w: zip entry %s: %v", ErrWriteBundle, f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: finalizing zip: %v", ErrWriteBundle, err)
	}

	return writeFile(outPath, buf.Bytes())
}

// ---------------------------------------------------------------------------
// single
// ---------------------------------------------------------------------------

// singleWriter writes one self-contained HTML file with the stylesheet and
// images embedded.
type singleWriter struct {
	minifier *pipeline.Minifier
}

func (w *singleWriter) Write(ctx context.Context, b *elem2keitaro.Bundle, outPath string) error {
	page, err := b.Inline(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBundle, err)
	}
	if w.minifier != nil {
		if page, err = w.minifier.HTML(page); err != nil {
			return fmt.Errorf("%w: minifying: %v", ErrWriteBundle, err)
		}
	}
	return writeFile(outPath, []byte(page))
}

func writeFile(outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory: %v", ErrWriteBundle, err)
	}
	if err := fileutil.WriteFileAtomic(outPath, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteBundle, outPath, err)
	}
	return nil
}
