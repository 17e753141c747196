package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds bundle output flags.
type outputFlags struct {
	dir    string
	format string
	minify bool
}

// fetchFlags holds image download flags.
type fetchFlags struct {
	timeout       string
	maxConcurrent int
	userAgent     string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      outputFlags
	fetch       fetchFlags
	workers     int
	assetsDir   string
	watch       bool
	metricsFile string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (or file for a single input)")
	fs.StringVarP(&f.format, "format", "f", "", "bundle format: dir, zip, single")
	fs.BoolVar(&f.minify, "minify", false, "minify HTML and CSS")
}

// addFetchFlags adds image download flags to a FlagSet.
func addFetchFlags(fs *flag.FlagSet, f *fetchFlags) {
	fs.StringVar(&f.timeout, "fetch-timeout", "", "per-image download timeout (e.g., 15s)")
	fs.IntVar(&f.maxConcurrent, "max-fetches", 0, "concurrent image downloads per document (0 = unbounded)")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent sent to image hosts")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.IntVarP(&f.workers, "workers", "w", 0, "documents converted in parallel (0 = auto)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory overriding the stylesheet and templates")
	fs.BoolVar(&f.watch, "watch", false, "keep running and reconvert documents when they change")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addFetchFlags(fs, &f.fetch)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
