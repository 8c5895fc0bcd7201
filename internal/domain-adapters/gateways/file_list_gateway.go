package gateways

import (
	"context"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
	"github.com/osg-htc/scriptgate/internal/domain/interfaces/gateways"
)

// fileListGateway serves a predetermined file list instead of walking
// the filesystem, for gate runs that consume the output of a separate
// discovery run (e.g. a CI check job reading the discover job's step
// output).
type fileListGateway struct {
	files entities.FileList
}

// NewFileListGateway creates a discovery gateway over an already
// discovered list of paths. Blank entries are dropped and duplicates
// keep only their first occurrence, so the exactly-once guarantee of
// the producing run is preserved.
func NewFileListGateway(paths []string) gateways.DiscoveryGateway {
	seen := make(map[string]bool, len(paths))
	files := make(entities.FileList, 0, len(paths))

	for _, path := range paths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, entities.ScriptFile{Path: path})
	}

	return &fileListGateway{files: files}
}

// DiscoverScripts returns the fixed list; the root is ignored
func (g *fileListGateway) DiscoverScripts(_ context.Context, _ string) (entities.FileList, error) {
	return g.files, nil
}
