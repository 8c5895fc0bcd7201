package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "discover":
		runDiscover(ctx, os.Args[2:])
	case "gate":
		runGate(ctx, os.Args[2:])
	case "checks":
		runChecks(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "watch":
		runWatch(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scriptgate - shebang-based script discovery and lint gate

Usage:
  scriptgate <command> [options]

Commands:
  discover  List every script under a root whose first line is a Python shebang
  gate      Run discovery plus the two lint checks; fail on any finding
  checks    Show the configured lint checks
  verify    Verify checksum/signature of a dependency manifest
  watch     Re-run the gate whenever scripts change

Use "scriptgate <command> --help" for more information about a command.`)
}
