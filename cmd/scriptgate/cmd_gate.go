package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/osg-htc/scriptgate/internal/domain-adapters/gateways"
	orchestrators "github.com/osg-htc/scriptgate/internal/domain-orchestrators"
	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces"
	ifgateways "github.com/osg-htc/scriptgate/internal/domain/interfaces/gateways"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/repositories"
	ifservices "github.com/osg-htc/scriptgate/internal/domain/interfaces/services"
	"github.com/osg-htc/scriptgate/internal/domain/services"
	"github.com/osg-htc/scriptgate/internal/external-adapters/githubci"
	"github.com/osg-htc/scriptgate/internal/external-adapters/yaml"
)

func runGate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("gate", flag.ExitOnError)
	var (
		root       = fs.String("root", "", "Directory to scan (overrides config)")
		configPath = fs.String("config", "", "Path to gate config YAML (built-in defaults when omitted)")
		only       = fs.String("only", "", "Run a single check: errors-only or rule-family")
		files      = fs.String("files", "", "Space-separated file list from a previous discover run (skips discovery)")
		verbose    = fs.Bool("verbose", false, "Show every finding")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptgate gate [options]

Run the lint gate: discover Python scripts by shebang, then run two
independent checks over them in parallel:
  - errors-only:  pylint restricted to error-severity findings
  - rule-family:  flake8 restricted to the F rule family

Either check reporting a finding fails the gate. An empty file list is
a trivial pass.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  scriptgate gate
  scriptgate gate --root ./scripts --verbose
  scriptgate gate --only errors-only
  scriptgate gate --config gate.yml
  scriptgate gate --files "group_fixup.py utils/helper.py"
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *only != "" && *only != entities.CheckErrorsOnly && *only != entities.CheckRuleFamily {
		fmt.Fprintf(os.Stderr, "Error: --only must be %s or %s\n\n", entities.CheckErrorsOnly, entities.CheckRuleFamily)
		fs.Usage()
		os.Exit(1)
	}

	if err := executeGate(ctx, yaml.NewConfigRepository(), *root, *configPath, *only, *files, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeGate(ctx context.Context, configRepo repositories.ConfigRepository, root, configPath, only, files string, verbose bool) error {
	// Layer 0: Configuration
	config, err := configRepo.LoadConfig(ctx, configPath)
	if err != nil {
		return err
	}
	if root != "" {
		config.Root = root
	}
	switch only {
	case entities.CheckErrorsOnly:
		config.RuleFamily.Disabled = true
	case entities.CheckRuleFamily:
		config.ErrorsOnly.Disabled = true
	}

	logger := &interfaces.StderrLogger{Verbose: verbose}

	// Layer 1: Gateways (Infrastructure)
	var discovery ifgateways.DiscoveryGateway
	if files != "" {
		// CI check jobs consume the discover job's filelist output
		// rather than re-walking the tree.
		discovery = gateways.NewFileListGateway(strings.Fields(files))
	} else {
		discovery = gateways.NewPythonScanner(config.Exclude)
	}
	lintGateway := gateways.NewCompositeLintGateway(config)

	// Layer 2: Service (Business Logic)
	gateService := services.NewGateService(lintGateway)

	// Layer 3: Orchestrator (Use Case)
	gateOrch := orchestrators.NewGateOrchestrator(discovery, gateService, logger)

	fmt.Printf("🔍 Lint Gate: %s\n\n", config.Root)

	report, err := gateOrch.PerformGateWorkflow(ctx, config.Root)
	if err != nil {
		return fmt.Errorf("gate workflow failed: %w", err)
	}

	displayGateReport(report, gateService, verbose)

	if err := publishGateSummary(report); err != nil {
		// The summary is informational; a broken runner file must not
		// change the gate verdict.
		fmt.Fprintf(os.Stderr, "Warning: failed to publish step summary: %v\n", err)
	}

	if report.Blocked {
		return fmt.Errorf("lint gate failed: %s", report.BlockReason)
	}

	return nil
}

func displayGateReport(report *entities.GateReport, gateService ifservices.GateService, verbose bool) {
	fmt.Printf("📄 Discovered scripts: %d\n", len(report.Files))
	if verbose {
		for _, f := range report.Files {
			fmt.Printf("   - %s (%s)\n", f.Path, f.Shebang)
		}
	}
	fmt.Printf("\n")

	for _, result := range report.Results {
		fmt.Printf("🧪 Check: %s", result.Check)
		if result.Command != "" {
			fmt.Printf(" (%s)", result.Command)
		}
		fmt.Printf("\n")

		switch {
		case result.Skipped:
			fmt.Printf("   ⏭️  Skipped (nothing to check)\n")
		case result.Err != "":
			fmt.Printf("   💥 Tool failure: %s\n", result.Err)
		case result.Passed:
			fmt.Printf("   ✅ No findings (%.2fs)\n", result.Duration.Seconds())
		default:
			fmt.Printf("   ❌ %d finding(s) (%.2fs)\n", len(result.Findings), result.Duration.Seconds())
			displayFindingCounts(gateService.CountByCode(result.Findings))
			if verbose {
				for _, f := range result.Findings {
					fmt.Printf("      %s\n", f.String())
				}
			}
		}
		fmt.Printf("\n")
	}

	fmt.Printf("⏱️  Gate Duration: %v\n\n", report.Duration)

	if report.Blocked {
		fmt.Printf("🚫 GATE RESULT: BLOCKED\n")
		fmt.Printf("   Reason: %s\n", report.BlockReason)
	} else {
		fmt.Printf("✅ GATE RESULT: PASSED\n")
	}
}

func displayFindingCounts(counts map[string]int) {
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		fmt.Printf("      %s: %d\n", code, counts[code])
	}
}

// publishGateSummary appends a Markdown verdict to the Actions step
// summary when one is available
func publishGateSummary(report *entities.GateReport) error {
	var b strings.Builder

	if report.Blocked {
		fmt.Fprintf(&b, "## 🚫 Lint gate blocked\n\n%s\n\n", report.BlockReason)
	} else {
		fmt.Fprintf(&b, "## ✅ Lint gate passed\n\n")
	}

	fmt.Fprintf(&b, "| Check | Result | Findings |\n|---|---|---|\n")
	for _, r := range report.Results {
		status := "✅ passed"
		switch {
		case r.Skipped:
			status = "⏭️ skipped"
		case r.Err != "":
			status = "💥 tool failure"
		case !r.Passed:
			status = "❌ failed"
		}
		fmt.Fprintf(&b, "| %s | %s | %d |\n", r.Check, status, len(r.Findings))
	}

	return githubci.AppendStepSummary(b.String())
}
