package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/repositories"
	"github.com/osg-htc/scriptgate/internal/external-adapters/yaml"
)

func runChecks(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("checks", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "Path to gate config YAML (built-in defaults when omitted)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptgate checks [options]

Show the lint checks the gate will run, after applying any config
overrides.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  scriptgate checks
  scriptgate checks --config gate.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	var configRepo repositories.ConfigRepository = yaml.NewConfigRepository()

	config, err := configRepo.LoadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configured checks (root: %s):\n\n", config.Root)
	displayCheck(config.ErrorsOnly)
	displayCheck(config.RuleFamily)

	if len(config.Exclude) > 0 {
		fmt.Printf("Excluded directories: %s\n", strings.Join(config.Exclude, ", "))
	}
}

func displayCheck(check entities.CheckConfig) {
	fmt.Printf("  %-14s %s %s\n", check.Name, check.Command, strings.Join(check.Args, " "))
	fmt.Printf("  %-14s Timeout: %dm\n", "", check.TimeoutMinutes)
	if check.Disabled {
		fmt.Printf("  %-14s ⏭️  Disabled\n", "")
	}
	fmt.Println()
}
