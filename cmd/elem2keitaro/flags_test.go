package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"pages", "-w", "4", "--assets-dir", "theme", "--watch", "--metrics-file", "m.prom",
		"-c", "team", "-v", "-o", "dist", "-f", "zip", "--minify",
		"--fetch-timeout", "5s", "--max-fetches", "8", "--user-agent", "bot/1.0",
	}

	f, positional, err := parseConvertFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags: %v", err)
	}

	if len(positional) != 1 || positional[0] != "pages" {
		t.Errorf("positional = %v, want [pages]", positional)
	}
	want := convertFlags{
		common:      commonFlags{config: "team", verbose: true},
		output:      outputFlags{dir: "dist", format: "zip", minify: true},
		fetch:       fetchFlags{timeout: "5s", maxConcurrent: 8, userAgent: "bot/1.0"},
		workers:     4,
		assetsDir:   "theme",
		watch:       true,
		metricsFile: "m.prom",
	}
	if *f != want {
		t.Errorf("flags = %+v\nwant    %+v", *f, want)
	}
}

func TestParseConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	f, positional, err := parseConvertFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags: %v", err)
	}
	if len(positional) != 0 {
		t.Errorf("positional = %v", positional)
	}
	if *f != (convertFlags{}) {
		t.Errorf("flags = %+v, want zero value", *f)
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"help", []string{"--help"}, flag.ErrHelp},
		{"unknown flag", []string{"--tar"}, nil},
		{"bad int", []string{"--workers", "many"}, nil},
		{"missing value", []string{"--format"}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseConvertFlags(tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
