package entities

import "time"

// CheckResult represents the outcome of one lint check over the file list
type CheckResult struct {
	Check    string // check name, e.g. "errors-only" or "rule-family"
	Command  string // linter executable that ran
	Passed   bool
	Skipped  bool // true when the file list was empty and the linter never ran
	Findings []Finding
	ExitCode int
	Duration time.Duration
	Err      string // tool failure (bad invocation, timeout, unparseable output), not a finding
}

// Failed reports whether this check blocks the gate: it produced at
// least one finding or the tool itself failed
func (r *CheckResult) Failed() bool {
	return !r.Passed
}

// GateReport contains the complete result of a gate run
type GateReport struct {
	Root        string
	Files       FileList
	Results     []*CheckResult
	Blocked     bool
	BlockReason string
	Duration    time.Duration
}
