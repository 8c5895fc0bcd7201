package gateways

import (
	"context"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/gateways"
)

// compositeLintGateway implements the LintGateway interface by composing
// the two individual lint checks together
type compositeLintGateway struct {
	config     *entities.GateConfig
	errorsOnly *pylintGateway
	ruleFamily *flake8Gateway
}

// NewCompositeLintGateway creates a composite gateway from the gate
// configuration
func NewCompositeLintGateway(config *entities.GateConfig) gateways.LintGateway {
	return &compositeLintGateway{
		config:     config,
		errorsOnly: NewPylintGateway(config.ErrorsOnly),
		ruleFamily: NewFlake8Gateway(config.RuleFamily),
	}
}

// RunErrorsOnly runs pylint restricted to error-severity findings
func (c *compositeLintGateway) RunErrorsOnly(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
	if c.config.ErrorsOnly.Disabled {
		return disabledResult(c.config.ErrorsOnly), nil
	}
	return c.errorsOnly.Run(ctx, files)
}

// RunRuleFamily runs flake8 restricted to the selected rule family
func (c *compositeLintGateway) RunRuleFamily(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
	if c.config.RuleFamily.Disabled {
		return disabledResult(c.config.RuleFamily), nil
	}
	return c.ruleFamily.Run(ctx, files)
}

// disabledResult reports a disabled check as skipped-pass so the report
// still lists it
func disabledResult(config entities.CheckConfig) *entities.CheckResult {
	return &entities.CheckResult{
		Check:   config.Name,
		Command: config.Command,
		Passed:  true,
		Skipped: true,
	}
}
