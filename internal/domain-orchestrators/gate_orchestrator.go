// Package orchestrators coordinates services for complex use cases.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/gateways"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/services"
)

// GateOrchestrator coordinates the complete gate workflow: discovery,
// then the two lint checks. Discovery-before-checks is the only ordering
// constraint; the checks themselves are independent and run concurrently.
type GateOrchestrator struct {
	discovery   gateways.DiscoveryGateway
	gateService services.GateService
	logger      interfaces.Logger
}

// NewGateOrchestrator creates a new gate orchestrator
func NewGateOrchestrator(discovery gateways.DiscoveryGateway, gateService services.GateService, logger interfaces.Logger) *GateOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &GateOrchestrator{
		discovery:   discovery,
		gateService: gateService,
		logger:      logger,
	}
}

// PerformGateWorkflow executes discovery and both checks and assembles
// the report. A check with findings blocks the gate but never prevents
// the other check from running and reporting its own result; only a
// discovery failure aborts the workflow.
func (o *GateOrchestrator) PerformGateWorkflow(ctx context.Context, root string) (*entities.GateReport, error) {
	startTime := time.Now()

	files, err := o.discovery.DiscoverScripts(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	o.logger.Info("discovered scripts", interfaces.F("root", root), interfaces.F("count", len(files)))

	var (
		errorsOnly *entities.CheckResult
		ruleFamily *entities.CheckResult
	)

	// Plain errgroup, no shared cancellation: a misbehaving linter in
	// one check must not cancel the other.
	var grp errgroup.Group

	grp.Go(func() error {
		errorsOnly = o.runCheck(ctx, entities.CheckErrorsOnly, func() (*entities.CheckResult, error) {
			return o.gateService.RunErrorsOnlyCheck(ctx, files)
		})
		return nil
	})

	grp.Go(func() error {
		ruleFamily = o.runCheck(ctx, entities.CheckRuleFamily, func() (*entities.CheckResult, error) {
			return o.gateService.RunRuleFamilyCheck(ctx, files)
		})
		return nil
	})

	// The goroutines store their results and never return errors, so
	// Wait only synchronizes.
	_ = grp.Wait()

	results := []*entities.CheckResult{errorsOnly, ruleFamily}

	report := &entities.GateReport{
		Root:     root,
		Files:    files,
		Results:  results,
		Duration: time.Since(startTime),
	}

	if o.gateService.ShouldBlockGate(results) {
		report.Blocked = true
		report.BlockReason = o.gateService.BlockReason(results)
	}

	return report, nil
}

// runCheck executes one check, folding tool failures into a failed
// result so both checks always produce a reportable outcome
func (o *GateOrchestrator) runCheck(_ context.Context, name string, run func() (*entities.CheckResult, error)) *entities.CheckResult {
	result, err := run()
	if err != nil {
		o.logger.Error("check did not run cleanly", interfaces.F("check", name), interfaces.F("error", err))
		if result == nil {
			result = &entities.CheckResult{Check: name, Err: err.Error()}
		}
		result.Passed = false
		if result.Err == "" {
			result.Err = err.Error()
		}
		return result
	}

	if result.Passed {
		o.logger.Info("check passed", interfaces.F("check", name), interfaces.F("skipped", result.Skipped))
	} else {
		o.logger.Warn("check failed", interfaces.F("check", name), interfaces.F("findings", len(result.Findings)))
	}

	return result
}
