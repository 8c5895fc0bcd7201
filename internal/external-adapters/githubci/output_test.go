package githubci

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput_SingleLine(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", outPath)

	if err := SetOutput("filelist", "group_fixup.py utils/helper.py"); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	if string(data) != "filelist=group_fixup.py utils/helper.py\n" {
		t.Errorf("output file = %q", string(data))
	}
}

func TestSetOutput_MultiLineUsesHeredoc(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", outPath)

	value := "group_fixup.py\nutils/helper.py"
	if err := SetOutput("filelist", value); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "filelist<<ghadelimiter_") {
		t.Errorf("multi-line output should use heredoc form, got %q", content)
	}
	if !strings.Contains(content, value+"\n") {
		t.Errorf("output should contain the value, got %q", content)
	}

	// The delimiter must open and close the block.
	firstLine := strings.SplitN(content, "\n", 2)[0]
	delimiter := strings.TrimPrefix(firstLine, "filelist<<")
	if !strings.HasSuffix(strings.TrimRight(content, "\n"), delimiter) {
		t.Errorf("heredoc block is not terminated by its delimiter: %q", content)
	}
}

func TestSetOutput_AppendsToExistingEntries(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", outPath)

	if err := SetOutput("filelist", "a.py"); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}
	if err := SetOutput("count", "1"); err != nil {
		t.Fatalf("SetOutput() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	if string(data) != "filelist=a.py\ncount=1\n" {
		t.Errorf("output file = %q", string(data))
	}
}

func TestSetOutput_NoOpOutsideActions(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	if err := SetOutput("filelist", "a.py"); err != nil {
		t.Errorf("SetOutput() outside Actions should be a no-op, got %v", err)
	}
	if Active() {
		t.Error("Active() should be false without GITHUB_OUTPUT")
	}
}

func TestAppendStepSummary(t *testing.T) {
	sumPath := filepath.Join(t.TempDir(), "summary")
	t.Setenv("GITHUB_STEP_SUMMARY", sumPath)

	if err := AppendStepSummary("## Gate passed"); err != nil {
		t.Fatalf("AppendStepSummary() error = %v", err)
	}

	data, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("Failed to read summary file: %v", err)
	}

	if string(data) != "## Gate passed\n" {
		t.Errorf("summary file = %q", string(data))
	}
}
