package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds parsed command line flags.
type cliFlags struct {
	config      string
	watch       bool
	verbose     bool
	showVersion bool
}

// parseFlags parses args (including the program name) and returns the flags
// and remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "path to the config file (default: sitedeploy.yml if present)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild on file changes")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
