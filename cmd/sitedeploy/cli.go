package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alnah/go-sitedeploy/internal/config"
	"github.com/alnah/go-sitedeploy/internal/watch"
)

// ErrTooManyArgs signals surplus positional arguments.
var ErrTooManyArgs = errors.New("usage: sitedeploy [flags] [target-dir]")

// runner is the interface for the deploy pipeline service.
type runner interface {
	Run(ctx context.Context, target string) error
}

// run resolves the target directory and executes the pipeline, once or in
// watch mode.
func run(ctx context.Context, flags *cliFlags, args []string, cfg *config.Config, svc runner, errOut io.Writer) error {
	if len(args) > 1 {
		return ErrTooManyArgs
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}
	if target == "" {
		target = cfg.Deploy.Target
	}

	if !flags.watch {
		return svc.Run(ctx, target)
	}
	return runWatch(ctx, flags, cfg, svc, target, errOut)
}

// runWatch builds once, then rebuilds after every settled change burst until
// the context is canceled. Build outputs and the target directory are
// excluded from watching so a build cannot retrigger itself.
func runWatch(ctx context.Context, flags *cliFlags, cfg *config.Config, svc runner, target string, errOut io.Writer) error {
	build := func() {
		if err := svc.Run(ctx, target); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}
	build()

	w, err := watch.New(".", watch.DefaultDebounce, outputIgnorer(cfg, target))
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintln(errOut, "Watching for changes...")
	}

	err = w.Run(ctx, func() {
		if flags.verbose {
			fmt.Fprintln(errOut, "Change detected, rebuilding...")
		}
		build()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// outputIgnorer reports whether an event path names a build output.
func outputIgnorer(cfg *config.Config, target string) func(string) bool {
	outputs := map[string]struct{}{
		cfg.Files.Manual:           {},
		cfg.Files.TemplateOut:      {},
		cfg.Files.ServiceWorkerOut: {},
	}
	targetBase := filepath.Base(target)

	return func(name string) bool {
		base := filepath.Base(name)
		if _, ok := outputs[base]; ok {
			return true
		}
		// Anything under the target directory is a deployed copy.
		return base == targetBase || strings.Contains(name, string(filepath.Separator)+targetBase+string(filepath.Separator))
	}
}
