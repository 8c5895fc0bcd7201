// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/gateways"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/services"
)

// gateService implements GateService with pure business logic
type gateService struct {
	gateway gateways.LintGateway
}

// NewGateService creates a new gate service with dependency injection
func NewGateService(gateway gateways.LintGateway) services.GateService {
	return &gateService{gateway: gateway}
}

// RunErrorsOnlyCheck runs the errors-only check against the file list
func (s *gateService) RunErrorsOnlyCheck(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
	if files.Empty() {
		return skippedResult(entities.CheckErrorsOnly), nil
	}

	result, err := s.gateway.RunErrorsOnly(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("errors-only check failed to run: %w", err)
	}

	return result, nil
}

// RunRuleFamilyCheck runs the selected-rule-family check against the file list
func (s *gateService) RunRuleFamilyCheck(ctx context.Context, files entities.FileList) (*entities.CheckResult, error) {
	if files.Empty() {
		return skippedResult(entities.CheckRuleFamily), nil
	}

	result, err := s.gateway.RunRuleFamily(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("rule-family check failed to run: %w", err)
	}

	return result, nil
}

// skippedResult is the trivial pass for an empty file list: the linter
// is never invoked
func skippedResult(check string) *entities.CheckResult {
	return &entities.CheckResult{
		Check:    check,
		Passed:   true,
		Skipped:  true,
		Duration: time.Duration(0),
	}
}

// ShouldBlockGate decides whether the gate fails overall.
// Pure business logic - no I/O. Any failing check blocks the gate; the
// checks are independent and order-insensitive.
func (s *gateService) ShouldBlockGate(results []*entities.CheckResult) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// BlockReason builds a human-readable explanation for a blocked gate
func (s *gateService) BlockReason(results []*entities.CheckResult) string {
	for _, r := range results {
		if !r.Failed() {
			continue
		}
		if r.Err != "" {
			return fmt.Sprintf("Gate blocked: %s check did not run cleanly: %s", r.Check, r.Err)
		}
		return fmt.Sprintf("Gate blocked: %s check reported %d finding(s)", r.Check, len(r.Findings))
	}
	return ""
}

// CountByCode aggregates findings per rule code
func (s *gateService) CountByCode(findings []entities.Finding) map[string]int {
	counts := make(map[string]int, len(findings))
	for _, f := range findings {
		counts[f.Code]++
	}
	return counts
}
