package entities

import "fmt"

// Severity levels as classified by the linters' own taxonomies
const (
	SeverityFatal      = "FATAL"
	SeverityError      = "ERROR"
	SeverityWarning    = "WARNING"
	SeverityConvention = "CONVENTION"
	SeverityRefactor   = "REFACTOR"
	SeverityUnknown    = "UNKNOWN"
)

// Finding represents a single static-analysis finding
type Finding struct {
	Path     string
	Line     int
	Column   int
	Code     string // rule code, e.g. E1101 or F401
	Symbol   string // symbolic rule name where the linter provides one
	Message  string
	Severity string // FATAL, ERROR, WARNING, CONVENTION, REFACTOR, UNKNOWN
}

// String renders the finding in the conventional path:line:col form
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", f.Path, f.Line, f.Column, f.Code, f.Message)
}
