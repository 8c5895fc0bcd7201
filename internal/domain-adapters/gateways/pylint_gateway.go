package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// pylint combines these flags bitwise in its exit status
const (
	pylintExitFatal = 1 << iota // fatal message issued
	pylintExitError             // error message issued
	pylintExitWarning
	pylintExitRefactor
	pylintExitConvention
	pylintExitUsage // usage error, the run itself is broken
)

// pylintGateway runs the errors-only check: pylint restricted to its
// error severity tier, JSON output
type pylintGateway struct {
	runner *CommandRunner
	config entities.CheckConfig
}

// NewPylintGateway creates a gateway for the errors-only check
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewPylintGateway(config entities.CheckConfig) *pylintGateway {
	return &pylintGateway{
		runner: NewCommandRunner(),
		config: config,
	}
}

// pylintMessage mirrors one element of pylint's --output-format=json array
type pylintMessage struct {
	Type      string `json:"type"` // fatal, error, warning, refactor, convention
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	MessageID string `json:"message-id"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
}

// Run executes the check against the file list. Findings fail the check
// through the result; only tool failures return an error.
func (g *pylintGateway) Run(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
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

	if run.ExitCode&pylintExitUsage != 0 {
		result.Err = strings.TrimSpace(run.Stderr)
		return result, fmt.Errorf("%s usage error (exit %d): %s", g.config.Command, run.ExitCode, result.Err)
	}

	findings, err := parsePylintJSON(run.Stdout)
	if err != nil {
		result.Err = err.Error()
		return result, fmt.Errorf("%s output not parseable: %w", g.config.Command, err)
	}

	result.Findings = findings
	result.Passed = len(findings) == 0 && run.ExitCode&(pylintExitFatal|pylintExitError) == 0
	if !result.Passed && len(findings) == 0 {
		// The exit status claims errors the JSON output does not show;
		// without this the blocked report would read "0 finding(s)".
		result.Err = fmt.Sprintf("exit status %d reports errors but no messages were emitted", run.ExitCode)
	}
	return result, nil
}

// parsePylintJSON decodes pylint's JSON message array into findings.
// Empty output means no messages were issued.
func parsePylintJSON(output string) ([]entities.Finding, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var messages []pylintMessage
	if err := json.Unmarshal([]byte(trimmed), &messages); err != nil {
		return nil, fmt.Errorf("decoding pylint JSON: %w", err)
	}

	findings := make([]entities.Finding, 0, len(messages))
	for _, m := range messages {
		findings = append(findings, entities.Finding{
			Path:     m.Path,
			Line:     m.Line,
			Column:   m.Column,
			Code:     m.MessageID,
			Symbol:   m.Symbol,
			Message:  m.Message,
			Severity: pylintSeverity(m.Type),
		})
	}

	return findings, nil
}

func pylintSeverity(msgType string) string {
	switch msgType {
	case "fatal":
		return entities.SeverityFatal
	case "error":
		return entities.SeverityError
	case "warning":
		return entities.SeverityWarning
	case "convention":
		return entities.SeverityConvention
	case "refactor":
		return entities.SeverityRefactor
	default:
		return entities.SeverityUnknown
	}
}
