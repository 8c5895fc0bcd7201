package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/osg-htc/scriptgate/internal/domain-adapters/gateways"
	"github.com/osg-htc/scriptgate/internal/external-adapters/githubci"
)

func runDiscover(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	var (
		root  = fs.String("root", ".", "Directory to scan for scripts")
		sep   = fs.String("sep", "newline", "Output separator: newline or space")
		quiet = fs.Bool("quiet", false, "Suppress the file list on stdout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptgate discover [options]

List every file under the root whose first line matches the Python
shebang pattern (^#!.*python). Each file appears exactly once, in
traversal order. Under GitHub Actions the list is also published as the
step output "filelist" (space-separated) together with "count".

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  scriptgate discover
  scriptgate discover --root ./scripts --sep space
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	separator := "\n"
	switch *sep {
	case "newline":
	case "space":
		separator = " "
	default:
		fmt.Fprintf(os.Stderr, "Error: --sep must be newline or space\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeDiscover(ctx, *root, separator, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeDiscover(ctx context.Context, root, separator string, quiet bool) error {
	scanner := gateways.NewPythonScanner([]string{".git"})

	files, err := scanner.DiscoverScripts(ctx, root)
	if err != nil {
		return err
	}

	if !quiet && !files.Empty() {
		fmt.Println(files.Join(separator))
	}

	// The CI file list is always the space-separated form: it is passed
	// straight to the linters as positional arguments.
	if err := githubci.SetOutput("filelist", files.Join(" ")); err != nil {
		return fmt.Errorf("failed to publish filelist output: %w", err)
	}
	if err := githubci.SetOutput("count", strconv.Itoa(len(files))); err != nil {
		return fmt.Errorf("failed to publish count output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Discovered %d script(s) under %s\n", len(files), root)
	return nil
}
