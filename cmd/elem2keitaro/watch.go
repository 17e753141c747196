package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alnah/go-elem2keitaro/internal/fileutil"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// watcher reconverts documents under input whenever they change.
type watcher struct {
	input  string
	output string
	format string
	conv   BundleConverter
	writer BundleWriter
	env    *Environment
	log    zerolog.Logger
	flags  *convertFlags
	reg    *prometheus.Registry // nil unless --metrics-file

	// ready, when set, is closed once every directory is watched (tests).
	ready chan struct{}
}

// run blocks until ctx is canceled. Cancellation is a clean exit.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	info, err := os.Stat(w.input)
	if err != nil {
		return err
	}
	baseDir := ""
	if info.IsDir() {
		baseDir = w.input
		if err := w.addTree(fw, w.input); err != nil {
			return err
		}
	} else if err := fw.Add(filepath.Dir(w.input)); err != nil {
		return fmt.Errorf("watching %s: %w", w.input, err)
	}

	if !w.flags.common.quiet {
		fmt.Fprintf(w.env.Stdout, "Watching %s (Ctrl+C to stop)\n", w.input)
	}
	if w.ready != nil {
		close(w.ready)
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		wg      sync.WaitGroup
	)
	defer func() {
		mu.Lock()
		for _, t := range pending {
			if t.Stop() {
				wg.Done()
			}
		}
		mu.Unlock()
		wg.Wait()
	}()

	fire := func(path string) func() {
		return func() {
			defer wg.Done()
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			w.reconvert(ctx, path, baseDir)
		}
	}
	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		// A timer stopped before firing hands its WaitGroup slot to its
		// replacement.
		if t, ok := pending[path]; !ok || !t.Stop() {
			wg.Add(1)
		}
		pending[path] = time.AfterFunc(watchDebounce, fire(path))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && baseDir != "" && fileutil.DirExists(ev.Name) {
				if err := w.addTree(fw, ev.Name); err != nil {
					w.log.Warn().Err(err).Str("dir", ev.Name).Msg("cannot watch new directory")
				}
				continue
			}
			if !w.relevant(ev, baseDir) {
				continue
			}
			w.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			schedule(ev.Name)
		}
	}
}

// relevant reports whether ev touches a watched document.
func (w *watcher) relevant(ev fsnotify.Event, baseDir string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if baseDir == "" {
		return filepath.Clean(ev.Name) == filepath.Clean(w.input)
	}
	return fileutil.HasExt(ev.Name, documentExt) && !strings.HasPrefix(filepath.Base(ev.Name), ".")
}

// reconvert converts one changed document and reports the result.
func (w *watcher) reconvert(ctx context.Context, path, baseDir string) {
	if ctx.Err() != nil || !fileutil.FileExists(path) {
		return
	}

	f := FileToConvert{
		InputPath:  path,
		OutputPath: resolveOutputPath(path, w.output, baseDir, w.format),
	}
	r := convertFile(ctx, w.conv, w.writer, f)
	printResultsWithWriter([]ConversionResult{r}, w.flags.common.quiet, w.flags.common.verbose, w.env)

	if w.reg != nil {
		if err := writeMetrics(w.reg, w.flags.metricsFile); err != nil {
			w.log.Error().Err(err).Msg("metrics not written")
		}
	}
}

// addTree watches dir and every non-hidden directory below it.
func (w *watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
