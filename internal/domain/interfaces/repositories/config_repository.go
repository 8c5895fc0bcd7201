// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// ConfigRepository defines the interface for loading gate configuration
type ConfigRepository interface {
	// LoadConfig loads the gate configuration from the given path.
	// An empty path yields the built-in defaults.
	LoadConfig(ctx context.Context, path string) (*entities.GateConfig, error)
}
