package gateways

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/osg-htc/scriptgate/internal/domain/entities"
)

// shebangMaxLine bounds how much of a file is read when looking for the
// interpreter line. Shebang lines are tiny in practice; the bound keeps
// discovery cheap on large binary files.
const shebangMaxLine = 256

// ShebangScanner discovers scripts by their interpreter line. A file is
// included iff its first line matches the pattern; later content never
// matters.
type ShebangScanner struct {
	pattern *regexp.Regexp
	exclude map[string]bool
}

// NewShebangScanner creates a scanner for the given interpreter pattern.
// Directory names in exclude are not descended into.
func NewShebangScanner(pattern string, exclude []string) (*ShebangScanner, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid interpreter pattern %q: %w", pattern, err)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	return &ShebangScanner{pattern: re, exclude: excluded}, nil
}

// NewPythonScanner creates a scanner matching Python shebangs
func NewPythonScanner(exclude []string) *ShebangScanner {
	s, err := NewShebangScanner(`^#!.*python`, exclude)
	if err != nil {
		// The built-in pattern is a constant; compilation cannot fail.
		panic(err)
	}
	return s
}

// DiscoverScripts walks root and collects every file whose first line
// matches the interpreter pattern. Paths are relative to root, in
// traversal order, each file exactly once. Unreadable files are skipped
// silently.
func (s *ShebangScanner) DiscoverScripts(ctx context.Context, root string) (entities.FileList, error) {
	var files entities.FileList

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are excluded, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != root && s.exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		shebang, ok := s.readShebang(path)
		if !ok {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		files = append(files, entities.ScriptFile{Path: rel, Shebang: shebang})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("script discovery failed under %s: %w", root, err)
	}

	return files, nil
}

// readShebang reads the first line of a file and reports whether it
// matches the interpreter pattern
func (s *ShebangScanner) readShebang(path string) (string, bool) {
	//nolint:gosec // G304: discovery intentionally opens files under the user-provided root
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	reader := bufio.NewReader(io.LimitReader(f, shebangMaxLine))
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}

	line = strings.TrimRight(line, "\r\n")
	if !s.pattern.MatchString(line) {
		return "", false
	}

	return line, true
}
