package entities

// Check names. The gate always runs exactly these two checks unless one
// is disabled by configuration.
const (
	CheckErrorsOnly = "errors-only"
	CheckRuleFamily = "rule-family"
)

// CheckConfig describes how one lint check is invoked
type CheckConfig struct {
	Name           string
	Command        string
	Args           []string // severity/rule-selection flags; file paths are appended
	TimeoutMinutes int
	Disabled       bool
}

// GateConfig is the complete configuration for a gate run
type GateConfig struct {
	Root       string
	Exclude    []string // directory names skipped during discovery
	ErrorsOnly CheckConfig
	RuleFamily CheckConfig
}

// DefaultGateConfig returns the built-in gate configuration: pylint
// restricted to error-severity findings and flake8 restricted to the F
// rule family (unused/undefined names)
func DefaultGateConfig() *GateConfig {
	return &GateConfig{
		Root:    ".",
		Exclude: []string{".git"},
		ErrorsOnly: CheckConfig{
			Name:           CheckErrorsOnly,
			Command:        "pylint",
			Args:           []string{"--errors-only", "--output-format=json", "--score=n"},
			TimeoutMinutes: 5,
		},
		RuleFamily: CheckConfig{
			Name:           CheckRuleFamily,
			Command:        "flake8",
			Args:           []string{"--select=F"},
			TimeoutMinutes: 5,
		},
	}
}
