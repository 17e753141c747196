package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
	"github.com/alnah/go-elem2keitaro/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrNoDocuments  = errors.New("no .json documents found")
	ErrReadDocument = errors.New("failed to read document")
	ErrWriteBundle  = errors.New("failed to write bundle")
	ErrWriteMetrics = errors.New("failed to write metrics file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// BundleConverter is the conversion contract the CLI depends on.
type BundleConverter interface {
	ConvertJSON(ctx context.Context, data []byte) *elem2keitaro.Bundle
}

// Compile-time interface implementation check.
var _ BundleConverter = (*elem2keitaro.Converter)(nil)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, log zerolog.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, inputPath)
	}

	var reg *prometheus.Registry
	var recorder elem2keitaro.Recorder
	if flags.metricsFile != "" {
		reg = prometheus.NewRegistry()
		recorder = elem2keitaro.NewPrometheusRecorder(reg)
	}

	conv, err := elem2keitaro.NewConverter(converterOptions(cfg, env, log, recorder)...)
	if err != nil {
		return err
	}

	writer := newBundleWriter(cfg.Output.Format, cfg.Output.Minify)
	workers := elem2keitaro.ResolveWorkers(resolveWorkerCount(flags.workers, envCfg))
	log.Debug().Int("documents", len(files)).Int("workers", workers).Str("format", cfg.Output.Format).Msg("starting batch")

	results := convertBatch(ctx, conv, writer, files, workers)
	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	if reg != nil {
		if err := writeMetrics(reg, flags.metricsFile); err != nil {
			return err
		}
	}

	if flags.watch {
		w := &watcher{
			input:  inputPath,
			output: cfg.Output.DefaultDir,
			format: cfg.Output.Format,
			conv:   conv,
			writer: writer,
			env:    env,
			log:    log,
			flags:  flags,
			reg:    reg,
		}
		return w.run(ctx)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed: %w", failed, len(results), firstError(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by ELEM2KEITARO_CONFIG,
// else returns defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.format != "" {
		cfg.Output.Format = flags.output.format
	}
	if flags.output.minify {
		cfg.Output.Minify = true
	}
	if flags.fetch.timeout != "" {
		cfg.Fetch.Timeout = flags.fetch.timeout
	}
	if flags.fetch.maxConcurrent != 0 {
		cfg.Fetch.MaxConcurrent = flags.fetch.maxConcurrent
	}
	if flags.fetch.userAgent != "" {
		cfg.Fetch.UserAgent = flags.fetch.userAgent
	}
	if flags.assetsDir != "" {
		cfg.Assets.BasePath = flags.assetsDir
	}
}

// resolveInputPath picks the positional argument or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveWorkerCount applies flag > env precedence; 0 means auto.
func resolveWorkerCount(flagWorkers int, env *envConfig) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return env.Workers
}

// converterOptions translates resolved configuration into library options.
func converterOptions(cfg *config.Config, env *Environment, log zerolog.Logger, rec elem2keitaro.Recorder) []elem2keitaro.Option {
	opts := []elem2keitaro.Option{
		elem2keitaro.WithLogger(log),
		elem2keitaro.WithMaxConcurrentFetches(cfg.Fetch.MaxConcurrent),
		elem2keitaro.WithUserAgent(cfg.Fetch.UserAgent),
		elem2keitaro.WithFetchTimeout(cfg.Fetch.TimeoutDuration()),
	}
	if env.HTTPClient != nil {
		opts = append(opts, elem2keitaro.WithHTTPClient(env.HTTPClient))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, elem2keitaro.WithAssetPath(cfg.Assets.BasePath))
	}
	if rec != nil {
		opts = append(opts, elem2keitaro.WithRecorder(rec))
	}
	return opts
}

// newLogger builds the CLI logger on w. Warnings show by default, -v adds
// debug output, -q keeps errors only.
func newLogger(w io.Writer, f commonFlags) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case f.quiet:
		level = zerolog.ErrorLevel
	case f.verbose:
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// withHint appends an actionable hint to well-known errors.
func withHint(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(triedPaths(err), config.AppDirName)
	case errors.Is(err, elem2keitaro.ErrDecode):
		msg += hints.ForInvalidDocument()
	case errors.Is(err, elem2keitaro.ErrInvalidAssetPath), errors.Is(err, elem2keitaro.ErrTemplateLoad):
		msg += hints.ForAssetsDir()
	case errors.Is(err, config.ErrInvalidValue) && strings.Contains(msg, "output.format"):
		msg += hints.ForFormat([]string{config.FormatDir, config.FormatZip, config.FormatSingle})
	case errors.Is(err, ErrWriteBundle):
		msg += hints.ForOutputDirectory()
	}
	return msg
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
