package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	json "github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
	"github.com/alnah/go-elem2keitaro/internal/config"
	"github.com/alnah/go-elem2keitaro/internal/fileutil"
	"github.com/alnah/go-elem2keitaro/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Assets   assetsInfo  `json:"assets"`
	Config   configInfo  `json:"config"`
	Network  networkInfo `json:"network"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type assetsInfo struct {
	Source string `json:"source"` // "embedded" or the override directory
	OK     bool   `json:"ok"`
}

type configInfo struct {
	Name       string `json:"name,omitempty"`
	Loaded     bool   `json:"loaded"`
	UserDir    string `json:"user_dir,omitempty"`
	UserDirSet bool   `json:"user_dir_exists"`
}

type networkInfo struct {
	HTTPSProxy string `json:"https_proxy,omitempty"`
	HTTPProxy  string `json:"http_proxy,omitempty"`
	NoProxy    string `json:"no_proxy,omitempty"`
	Container  bool   `json:"container"`
}

type systemInfo struct {
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	GOMAXPROCS     int    `json:"gomaxprocs"`
	OutputDir      string `json:"output_dir"`
	OutputWritable bool   `json:"output_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"doctor"}, env)
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	result := runDoctor(loadEnvConfig())

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *envConfig) *doctorResult {
	result := &doctorResult{Status: statusReady}

	cfg := checkConfig(result, env)
	checkAssets(result, cfg.Assets.BasePath)
	checkNetwork(result)
	checkSystem(result, cfg.Output.DefaultDir)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkConfig loads ELEM2KEITARO_CONFIG when set and returns the effective
// configuration (defaults on failure).
func checkConfig(result *doctorResult, env *envConfig) *config.Config {
	if dir, err := os.UserConfigDir(); err == nil {
		result.Config.UserDir = filepath.Join(dir, config.AppDirName)
		result.Config.UserDirSet = fileutil.DirExists(result.Config.UserDir)
	}

	cfg := config.DefaultConfig()
	if env.ConfigPath != "" {
		result.Config.Name = env.ConfigPath
		loaded, err := config.LoadConfig(env.ConfigPath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config %s: %v", env.ConfigPath, err))
		} else {
			cfg = loaded
			result.Config.Loaded = true
		}
	}
	applyEnvConfig(env, cfg)
	return cfg
}

// checkAssets builds a converter to prove the stylesheet and templates load.
func checkAssets(result *doctorResult, assetsDir string) {
	result.Assets.Source = "embedded"
	var opts []elem2keitaro.Option
	if assetsDir != "" {
		result.Assets.Source = assetsDir
		opts = append(opts, elem2keitaro.WithAssetPath(assetsDir))
	}

	if _, err := elem2keitaro.NewConverter(opts...); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	result.Assets.OK = true
}

// checkNetwork reports proxy settings used for image downloads.
func checkNetwork(result *doctorResult) {
	result.Network = networkInfo{
		HTTPSProxy: firstEnv("HTTPS_PROXY", "https_proxy"),
		HTTPProxy:  firstEnv("HTTP_PROXY", "http_proxy"),
		NoProxy:    firstEnv("NO_PROXY", "no_proxy"),
		Container:  hints.IsInContainer(),
	}
	if result.Network.Container && result.Network.HTTPSProxy == "" {
		result.Warnings = append(result.Warnings,
			"Container detected without HTTPS_PROXY; image downloads may fail"+hints.ForImageFetch())
	}
}

// checkSystem verifies the output directory is writable.
func checkSystem(result *doctorResult, outputDir string) {
	if outputDir == "" {
		outputDir = "."
	}
	result.System = systemInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		OutputDir:  outputDir,
	}

	if !fileutil.DirExists(outputDir) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Output directory %s does not exist yet; it will be created", outputDir))
		return
	}

	f, err := os.CreateTemp(outputDir, ".elem2keitaro-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", outputDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.OutputWritable = true
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "elem2keitaro doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.OK {
		fmt.Fprintf(w, "  [OK] Stylesheet and templates load (%s)\n", r.Assets.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Cannot load assets (%s)\n", r.Assets.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Loaded:
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.Config.Name)
	case r.Config.Name != "":
		fmt.Fprintf(w, "  [ERROR] Cannot load %s\n", r.Config.Name)
	default:
		fmt.Fprintln(w, "  [OK] Using defaults (ELEM2KEITARO_CONFIG not set)")
	}
	if r.Config.UserDir != "" {
		state := "absent"
		if r.Config.UserDirSet {
			state = "present"
		}
		fmt.Fprintf(w, "  [OK] User config directory: %s (%s)\n", r.Config.UserDir, state)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Network")
	if r.Network.HTTPSProxy != "" {
		fmt.Fprintf(w, "  [OK] HTTPS proxy: %s\n", r.Network.HTTPSProxy)
	} else {
		fmt.Fprintln(w, "  [OK] HTTPS proxy: none")
	}
	if r.Network.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s, GOMAXPROCS=%d\n", r.System.OS, r.System.Arch, r.System.GOMAXPROCS)
	if r.System.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory writable: %s\n", r.System.OutputDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
