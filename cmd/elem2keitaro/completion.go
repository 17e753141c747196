package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-elem2keitaro/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

const programName = "elem2keitaro"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name     string
	Desc     string
	Flags    []flagDef
	ArgGlob  string   // glob for file arguments (e.g., "*.json"); empty = none
	ArgWords []string // fixed positional values
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"format":       {Values: []string{config.FormatDir, config.FormatZip, config.FormatSingle}},
	"config":       {FileGlob: "*.yaml,*.yml"},
	"metrics-file": {FileGlob: "*.prom"},
	"output":       {IsDir: true},
	"assets-dir":   {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:    "convert",
			Desc:    "Convert page-builder exports to landing pages",
			Flags:   extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			ArgGlob: "*" + documentExt,
		},
		{
			Name: "config",
			Desc: "Print the effective configuration",
			Flags: []flagDef{
				{Long: "config", Short: "c", Type: flagFile, Desc: "config file name or path", FileGlob: "*.yaml,*.yml"},
			},
		},
		{
			Name:  "doctor",
			Desc:  "Check the environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "machine-readable output"}},
		},
		{
			Name:     "completion",
			Desc:     "Generate shell completion script",
			ArgWords: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elem2keitaro completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(elem2keitaro completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(elem2keitaro completion zsh)\"    # in ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:  elem2keitaro completion fish > ~/.config/fish/completions/elem2keitaro.fish")
}

// ---------------------------------------------------------------------------
// bash
// ---------------------------------------------------------------------------

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	fmt.Fprintf(&b, "# bash completion for %s\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("  local cur prev\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	b.WriteString("    return\n  fi\n")
	b.WriteString("  case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && c.ArgGlob == "" && len(c.ArgWords) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var cases strings.Builder
		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
			if reply := bashValueReply(f); reply != "" {
				fmt.Fprintf(&cases, "        %s) %s; return ;;\n", flagAlternatives(f, "|"), reply)
			}
		}
		if cases.Len() > 0 {
			b.WriteString("      case \"$prev\" in\n")
			b.WriteString(cases.String())
			b.WriteString("      esac\n")
		}
		if len(words) > 0 {
			b.WriteString("      if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(words, " "))
			b.WriteString("        return\n      fi\n")
		}
		switch {
		case c.ArgGlob != "":
			fmt.Fprintf(&b, "      COMPREPLY=( $(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\") )\n", c.ArgGlob)
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "      COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.ArgWords, " "))
		}
		b.WriteString("      ;;\n")
	}

	b.WriteString("  esac\n}\n")
	fmt.Fprintf(&b, "complete -o filenames -F _%s %s\n", programName, programName)
	return b.String()
}

func bashValueReply(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"$cur\") )", strings.Join(f.Values, " "))
	case flagDir:
		return "COMPREPLY=( $(compgen -d -- \"$cur\") )"
	case flagFile:
		parts := []string{}
		for _, g := range strings.Split(f.FileGlob, ",") {
			parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
		}
		return "COMPREPLY=( " + strings.Join(parts, " ") + " $(compgen -d -- \"$cur\") )"
	case flagString, flagInt:
		return "COMPREPLY=()"
	}
	return ""
}

// flagAlternatives joins the long and short spellings of f with sep.
func flagAlternatives(f flagDef, sep string) string {
	if f.Short == "" {
		return "--" + f.Long
	}
	return "--" + f.Long + sep + "-" + f.Short
}

// ---------------------------------------------------------------------------
// zsh
// ---------------------------------------------------------------------------

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n\n")
	b.WriteString("  if (( CURRENT == 2 )); then\n    _describe 'command' commands\n    return\n  fi\n\n")
	b.WriteString("  case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && c.ArgGlob == "" && len(c.ArgWords) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.ArgWords) > 0 && len(c.Flags) == 0 {
			fmt.Fprintf(&b, "      _values 'value' %s\n      ;;\n", strings.Join(c.ArgWords, " "))
			continue
		}
		b.WriteString("      _arguments")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n        %s", zshFlagSpec(f))
		}
		if c.ArgGlob != "" {
			fmt.Fprintf(&b, " \\\n        '*:document:_files -g \"%s\"'", c.ArgGlob)
		}
		b.WriteString("\n      ;;\n")
	}

	b.WriteString("  esac\n}\n\n")
	fmt.Fprintf(&b, "compdef _%s %s\n", programName, programName)
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", "|")
		action = fmt.Sprintf(":%s:_files -g \"(%s)\"", f.Long, globs)
	default:
		action = fmt.Sprintf(":%s: ", f.Long)
	}

	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

var zshReplacer = strings.NewReplacer("'", "", "[", "(", "]", ")", ":", " -")

func zshEscape(s string) string {
	return zshReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// fish
// ---------------------------------------------------------------------------

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n", programName)
	fmt.Fprintf(&b, "complete -c %s -f\n", programName)

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c %s -n '__fish_use_subcommand' -a %s -d '%s'\n", programName, c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c %s %s", programName, cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -r -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
		switch {
		case c.ArgGlob != "":
			fmt.Fprintf(&b, "complete -c %s %s -a '(__fish_complete_suffix %s)'\n", programName, cond, strings.TrimPrefix(c.ArgGlob, "*"))
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "complete -c %s %s -a '%s'\n", programName, cond, strings.Join(c.ArgWords, " "))
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
