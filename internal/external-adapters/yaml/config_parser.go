// Package yaml provides YAML-based gate configuration parsing and
// repository implementations.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// yamlGateConfig represents the raw YAML structure
type yamlGateConfig struct {
	Root    string     `yaml:"root"`
	Exclude []string   `yaml:"exclude"`
	Checks  yamlChecks `yaml:"checks"`
}

type yamlChecks struct {
	ErrorsOnly yamlCheck `yaml:"errors_only"`
	RuleFamily yamlCheck `yaml:"rule_family"`
}

type yamlCheck struct {
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	TimeoutMinutes int      `yaml:"timeout_minutes"`
	Disabled       bool     `yaml:"disabled"`
}

// ConfigParser parses gate configuration files
type ConfigParser struct{}

// NewConfigParser creates a new gate configuration parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// Parse decodes YAML data into a gate configuration. Fields left unset
// keep the built-in defaults, so a config file only has to name what it
// overrides.
func (p *ConfigParser) Parse(data []byte) (*entities.GateConfig, error) {
	var raw yamlGateConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse gate config: %w", err)
	}

	config := entities.DefaultGateConfig()

	if raw.Root != "" {
		config.Root = raw.Root
	}
	if raw.Exclude != nil {
		config.Exclude = raw.Exclude
	}

	applyCheckOverrides(&config.ErrorsOnly, raw.Checks.ErrorsOnly)
	applyCheckOverrides(&config.RuleFamily, raw.Checks.RuleFamily)

	if config.ErrorsOnly.Disabled && config.RuleFamily.Disabled {
		return nil, fmt.Errorf("gate config disables both checks")
	}

	return config, nil
}

// ParseFile parses a gate configuration from a file
func (p *ConfigParser) ParseFile(path string) (*entities.GateConfig, error) {
	//nolint:gosec // G304: config path is user-provided
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gate config: %w", err)
	}

	return p.Parse(data)
}

func applyCheckOverrides(check *entities.CheckConfig, raw yamlCheck) {
	if raw.Command != "" {
		check.Command = raw.Command
	}
	if raw.Args != nil {
		check.Args = raw.Args
	}
	if raw.TimeoutMinutes > 0 {
		check.TimeoutMinutes = raw.TimeoutMinutes
	}
	check.Disabled = raw.Disabled
}
