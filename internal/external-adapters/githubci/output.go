// Package githubci publishes step outputs and summaries when running
// under GitHub Actions. Outside of Actions every operation is a no-op.
package githubci

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Env variable names defined by the Actions runner
const (
	envOutput      = "GITHUB_OUTPUT"
	envStepSummary = "GITHUB_STEP_SUMMARY"
)

// Active reports whether a step output file is available
func Active() bool {
	return os.Getenv(envOutput) != ""
}

// SetOutput publishes a named step output for downstream jobs. Values
// containing newlines use the runner's heredoc form with a random
// delimiter so the value cannot terminate the block early.
func SetOutput(name, value string) error {
	path := os.Getenv(envOutput)
	if path == "" {
		return nil
	}

	var entry string
	if strings.ContainsAny(value, "\r\n") {
		delimiter, err := randomDelimiter()
		if err != nil {
			return err
		}
		entry = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		entry = fmt.Sprintf("%s=%s\n", name, value)
	}

	return appendTo(path, entry)
}

// AppendStepSummary appends Markdown to the job's step summary
func AppendStepSummary(markdown string) error {
	path := os.Getenv(envStepSummary)
	if path == "" {
		return nil
	}

	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}

	return appendTo(path, markdown)
}

func appendTo(path, content string) error {
	//nolint:gosec // G304: path comes from the Actions runner environment
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}

	return f.Close()
}

func randomDelimiter() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(buf), nil
}
