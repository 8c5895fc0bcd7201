package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osg-htc/scriptgate/internal/domain/interfaces/repositories"
	"github.com/osg-htc/scriptgate/internal/external-adapters/watcher"
	"github.com/osg-htc/scriptgate/internal/external-adapters/yaml"
)

func runWatch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var (
		root       = fs.String("root", "", "Directory to scan (overrides config)")
		configPath = fs.String("config", "", "Path to gate config YAML (built-in defaults when omitted)")
		debounce   = fs.Duration("debounce", 500*time.Millisecond, "Quiet period before re-running the gate")
		verbose    = fs.Bool("verbose", false, "Show every finding")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptgate watch [options]

Run the gate once, then re-run it whenever files under the root change.
Intended for local development; the process keeps running after a
failing gate.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  scriptgate watch
  scriptgate watch --root ./scripts --debounce 2s
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeWatch(ctx, yaml.NewConfigRepository(), *root, *configPath, *debounce, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeWatch(ctx context.Context, configRepo repositories.ConfigRepository, root, configPath string, debounce time.Duration, verbose bool) error {
	config, err := configRepo.LoadConfig(ctx, configPath)
	if err != nil {
		return err
	}
	if root != "" {
		config.Root = root
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func(ctx context.Context) error {
		if err := executeGate(ctx, configRepo, config.Root, configPath, "", "", verbose); err != nil {
			// A blocked gate is the expected failure mode while editing;
			// report it and keep watching.
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return nil
	}

	if err := runOnce(ctx); err != nil {
		return err
	}

	w := watcher.New(config.Root, config.Exclude, debounce, nil)
	if err := w.Watch(ctx, runOnce); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
