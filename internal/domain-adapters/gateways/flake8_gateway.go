package gateways

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// flake8 exits 0 on a clean run and 1 when findings were reported;
// anything else indicates the tool itself failed.
const flake8ExitFindings = 1

// flake8Line matches flake8's default output: path:line:col: CODE message
var flake8Line = regexp.MustCompile(`^(.+?):(\d+):(\d+):\s+([A-Z]\d+)\s+(.*)$`)

// flake8Gateway runs the rule-family check: flake8 restricted to one
// named rule category (the F family of unused/undefined-name checks)
type flake8Gateway struct {
	runner *CommandRunner
	config entities.CheckConfig
}

// NewFlake8Gateway creates a gateway for the rule-family check
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewFlake8Gateway(config entities.CheckConfig) *flake8Gateway {
	return &flake8Gateway{
		runner: NewCommandRunner(),
		config: config,
	}
}

// Run executes the check against the file list. Findings fail the check
// through the result; only tool failures return an error.
func (g *flake8Gateway) Run(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
	args := append([]string{}, g.config.Args...)
	args = append(args, "--")
	args = append(args, files.Paths()...)

	run := g.runner.Run(ctx, RunConfig{
		Command:     g.config.Command,
		Args:        args,
		Timeout:     time.Duration(g.config.TimeoutMinutes) * time.Minute,
		Description: g.config.Name,
	})

	result := &entities.CheckResult{
		Check:    g.config.Name,
		Command:  g.config.Command,
		ExitCode: run.ExitCode,
		Duration: run.Duration,
	}

	if run.Err != nil {
		result.Err = run.Err.Error()
		return result, fmt.Errorf("%s: %w", g.config.Command, run.Err)
	}

	findings := parseFlake8Output(run.Stdout)

	switch {
	case run.ExitCode == 0:
		result.Passed = true
	case run.ExitCode == flake8ExitFindings && len(findings) > 0:
		result.Findings = findings
	default:
		result.Err = strings.TrimSpace(run.Stderr)
		if result.Err == "" {
			result.Err = fmt.Sprintf("exit %d with no parseable findings", run.ExitCode)
		}
		return result, fmt.Errorf("%s failed (exit %d): %s", g.config.Command, run.ExitCode, result.Err)
	}

	return result, nil
}

// parseFlake8Output extracts findings from flake8's line-per-finding
// output. Lines that do not match the format are ignored.
func parseFlake8Output(output string) []entities.Finding {
	var findings []entities.Finding

	for _, line := range strings.Split(output, "\n") {
		m := flake8Line.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(m[2])
		colNo, _ := strconv.Atoi(m[3])

		findings = append(findings, entities.Finding{
			Path:     m[1],
			Line:     lineNo,
			Column:   colNo,
			Code:     m[4],
			Message:  m[5],
			Severity: entities.SeverityError,
		})
	}

	return findings
}
