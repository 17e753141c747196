// Package elem2keitaro converts page-builder (Elementor) JSON exports into
// static landing-page bundles for the Keitaro tracker.
//
// # Quick Start
//
//	conv, err := elem2keitaro.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bundle := conv.ConvertJSON(ctx, data)
//	if bundle.Failed() {
//	    log.Println("conversion failed:", bundle.Err)
//	}
//	os.WriteFile("index.html", []byte(bundle.HTML), 0o644)
//	os.WriteFile("style.css", []byte(bundle.CSS), 0o644)
//	for _, a := range bundle.Assets {
//	    os.WriteFile(filepath.Join("img", a.Filename), a.Content, 0o644)
//	}
//
// A failed conversion still returns a Bundle: its HTML is a standalone
// error page describing the failure, so callers can always write something.
//
// # Conversion Pipeline
//
//  1. Normalization: the document is accepted as {content: [...]}, a bare
//     array, or {elements: [...]}, in that order. Other shapes are empty.
//  2. Asset resolution: every image widget URL and background image URL is
//     fetched concurrently. Failures are logged and the remote URL is kept.
//  3. Rendering: sections, columns and containers become the keitaro grid;
//     widgets (heading, text, button, image, video, spacer, divider) become
//     styled fragments. Unknown widgets render as labeled placeholders.
//  4. Assembly: the content is wrapped in the landing-page document, which
//     links style.css and carries the tracker's page-view and conversion
//     hooks.
//
// Text is emitted as-is so tracker macros such as {offer_name} and
// {offer_url} reach the page untouched. The input document is trusted.
//
// # Configuration
//
//	conv, err := elem2keitaro.NewConverter(
//	    elem2keitaro.WithLogger(logger),
//	    elem2keitaro.WithMaxConcurrentFetches(8),
//	    elem2keitaro.WithFetchTimeout(15 * time.Second),
//	    elem2keitaro.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── keitaro.css
//	└── templates/
//	    ├── document.html
//	    └── error.html
//
// # Concurrency
//
// Converter is safe for concurrent use. Use ResolveWorkers to size a batch.
package elem2keitaro
