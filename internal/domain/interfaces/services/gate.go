// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// GateService defines the interface for running and judging lint checks.
// Contains the business logic of the gate: an empty file list passes
// trivially, and any finding fails the check that produced it.
type GateService interface {
	// Check execution
	RunErrorsOnlyCheck(ctx context.Context, files entities.FileList) (*entities.CheckResult, error)
	RunRuleFamilyCheck(ctx context.Context, files entities.FileList) (*entities.CheckResult, error)

	// Business logic
	ShouldBlockGate(results []*entities.CheckResult) bool
	BlockReason(results []*entities.CheckResult) string
	CountByCode(findings []entities.Finding) map[string]int
}
