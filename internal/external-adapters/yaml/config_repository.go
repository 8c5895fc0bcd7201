package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct {
	parser *ConfigParser
}

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{
		parser: NewConfigParser(),
	}
}

// LoadConfig loads the gate configuration from path. An empty path
// yields the built-in defaults.
func (r *ConfigRepository) LoadConfig(_ context.Context, path string) (*entities.GateConfig, error) {
	if path == "" {
		return entities.DefaultGateConfig(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("gate config not found: %s", path)
	}

	return r.parser.ParseFile(path)
}
