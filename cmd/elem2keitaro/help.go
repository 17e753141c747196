package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elem2keitaro <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert page-builder exports to Keitaro landing pages")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  doctor      Check the environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'elem2keitaro help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elem2keitaro convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert page-builder JSON exports into Keitaro landing-page bundles.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .json document or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory (or file for a single input)")
	fmt.Fprintln(w, "  -f, --format <s>          Bundle format: dir, zip, single (default: dir)")
	fmt.Fprintln(w, "      --minify              Minify HTML and CSS")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Documents converted in parallel (0 = auto)")
	fmt.Fprintln(w, "      --assets-dir <path>   Override styles/keitaro.css and templates/*.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --fetch-timeout <d>   Per-image download timeout (e.g., 15s)")
	fmt.Fprintln(w, "      --max-fetches <n>     Concurrent downloads per document (0 = unbounded)")
	fmt.Fprintln(w, "      --user-agent <s>      User-Agent sent to image hosts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Operation:")
	fmt.Fprintln(w, "      --watch               Reconvert documents when they change")
	fmt.Fprintln(w, "      --metrics-file <path> Write Prometheus metrics when done")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ELEM2KEITARO_CONFIG, ELEM2KEITARO_INPUT_DIR, ELEM2KEITARO_OUTPUT_DIR,")
	fmt.Fprintln(w, "  ELEM2KEITARO_FORMAT, ELEM2KEITARO_WORKERS, ELEM2KEITARO_FETCH_TIMEOUT,")
	fmt.Fprintln(w, "  ELEM2KEITARO_USER_AGENT, ELEM2KEITARO_ASSETS_DIR")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elem2keitaro config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration convert would use, after applying the config")
	fmt.Fprintln(w, "file and ELEM2KEITARO_* environment variables, as YAML.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: elem2keitaro doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check assets, configuration and network settings.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: elem2keitaro version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: elem2keitaro help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
