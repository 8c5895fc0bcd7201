// Package gateways defines interfaces for infrastructure adapters.
package gateways

import (
	"context"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// DiscoveryGateway locates the scripts a gate run operates on
type DiscoveryGateway interface {
	// DiscoverScripts walks root and returns every file whose first
	// line matches the interpreter pattern, in traversal order, each
	// file exactly once
	DiscoverScripts(ctx context.Context, root string) (entities.FileList, error)
}

// LintGateway runs the two static checks of the gate. The returned
// error covers tool failures only (missing binary, timeout, unparseable
// output); findings are reported through the CheckResult.
type LintGateway interface {
	// RunErrorsOnly runs the check restricted to error-severity findings
	RunErrorsOnly(ctx context.Context, files entities.FileList) (*entities.CheckResult, error)

	// RunRuleFamily runs the check restricted to the selected rule family
	RunRuleFamily(ctx context.Context, files entities.FileList) (*entities.CheckResult, error)
}
