package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
	"github.com/alnah/go-elem2keitaro/internal/fileutil"
)

const documentExt = ".json"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("document must have a .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single document to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // directory for FormatDir, file otherwise
}

// discoverFiles finds all documents to convert under inputPath.
// Hidden directories are skipped.
func discoverFiles(inputPath, outputDir, format string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDocumentExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", format)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExt(path, documentExt) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, format)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines where a document's bundle goes.
//
//   - dir:    <out>/<name>/ holding index.html, style.css and img/
//   - zip:    <out>/<name>.zip
//   - single: <out>/<name>.html
//
// With no output directory the bundle lands next to the document. For a
// single input, an output path already carrying the format's extension is
// used as is. Directory inputs keep their relative layout.
func resolveOutputPath(inputPath, outputDir, baseInputDir, format string) string {
	name := fileutil.TrimExt(inputPath) + formatExt(format)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir == "" && formatExt(format) != "" && fileutil.HasExt(outputDir, formatExt(format)) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// formatExt returns the file extension a format writes, "" for directories.
func formatExt(format string) string {
	switch format {
	case config.FormatZip:
		return ".zip"
	case config.FormatSingle:
		return ".html"
	}
	return ""
}

// validateDocumentExtension checks that the file has a .json extension.
func validateDocumentExtension(path string) error {
	if !fileutil.HasExt(path, documentExt) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > elem2keitaro.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, elem2keitaro.MaxWorkers)
	}
	return nil
}
