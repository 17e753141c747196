package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-elem2keitaro/internal/config"
)

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var configName string
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConfigUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(configName, envCfg)
	if err == nil {
		applyEnvConfig(envCfg, cfg)
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, withHint(err))
		return exitCodeFor(err)
	}

	out, err := config.Dump(cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	fmt.Fprint(env.Stdout, out)
	return ExitSuccess
}
