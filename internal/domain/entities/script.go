// Package entities defines core domain models and data structures.
package entities

import "strings"

// ScriptFile represents a single discovered script
type ScriptFile struct {
	Path    string // path relative to the discovery root
	Shebang string // first line of the file at discovery time
}

// FileList is the ordered set of scripts discovered in one run.
// Every entry had a first line matching the interpreter pattern when
// discovered; no path appears twice. The list is produced once per run
// and is read-only for consumers.
type FileList []ScriptFile

// Paths returns the relative paths in discovery order
func (l FileList) Paths() []string {
	paths := make([]string, 0, len(l))
	for _, f := range l {
		paths = append(paths, f.Path)
	}
	return paths
}

// Join renders the list with the given separator (e.g. " " for the
// space-separated form consumed as a CI step output)
func (l FileList) Join(sep string) string {
	return strings.Join(l.Paths(), sep)
}

// Empty reports whether no scripts were discovered
func (l FileList) Empty() bool {
	return len(l) == 0
}
