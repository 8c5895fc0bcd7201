package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestShebangScanner_DiscoverScripts(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "group_fixup.py", "#!/usr/bin/env python3\nimport sys\n")
	writeFile(t, root, "utils/helper.py", "#!/usr/bin/python\nimport os\n")
	writeFile(t, root, "plain.py", "import os\n")                            // no shebang
	writeFile(t, root, "run.sh", "#!/bin/sh\necho hi\n")                     // wrong interpreter
	writeFile(t, root, "late.txt", "readme\n#!/usr/bin/env python3\n")       // shebang not on first line
	writeFile(t, root, "empty.py", "")                                       // empty file
	writeFile(t, root, ".git/hooks/pre-commit", "#!/usr/bin/env python3\n")  // excluded dir
	writeFile(t, root, "noext", "#!/usr/bin/env python3\nprint('no ext')\n") // extension is irrelevant

	scanner := NewPythonScanner([]string{".git"})
	files, err := scanner.DiscoverScripts(context.Background(), root)
	if err != nil {
		t.Fatalf("DiscoverScripts() error = %v", err)
	}

	got := make(map[string]int)
	for _, f := range files {
		got[f.Path]++
	}

	want := []string{"group_fixup.py", filepath.Join("utils", "helper.py"), "noext"}
	if len(files) != len(want) {
		t.Fatalf("DiscoverScripts() returned %d files %v, want %d", len(files), files.Paths(), len(want))
	}

	for _, path := range want {
		if got[path] != 1 {
			t.Errorf("DiscoverScripts() returned %q %d times, want exactly once", path, got[path])
		}
	}

	for _, excluded := range []string{"plain.py", "run.sh", "late.txt", "empty.py", filepath.Join(".git", "hooks", "pre-commit")} {
		if got[excluded] != 0 {
			t.Errorf("DiscoverScripts() should not include %q", excluded)
		}
	}
}

func TestShebangScanner_CapturesShebangLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "script.py", "#!/usr/bin/env python3\nprint('x')\n")

	scanner := NewPythonScanner(nil)
	files, err := scanner.DiscoverScripts(context.Background(), root)
	if err != nil {
		t.Fatalf("DiscoverScripts() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("DiscoverScripts() returned %d files, want 1", len(files))
	}

	if files[0].Shebang != "#!/usr/bin/env python3" {
		t.Errorf("Shebang = %q, want %q", files[0].Shebang, "#!/usr/bin/env python3")
	}
}

func TestShebangScanner_ShebangWithoutTrailingNewline(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "oneline.py", "#!/usr/bin/env python3")

	scanner := NewPythonScanner(nil)
	files, err := scanner.DiscoverScripts(context.Background(), root)
	if err != nil {
		t.Fatalf("DiscoverScripts() error = %v", err)
	}

	if len(files) != 1 {
		t.Errorf("DiscoverScripts() returned %d files, want 1 (missing newline should not matter)", len(files))
	}
}

func TestShebangScanner_UnreadableFileSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, root, "readable.py", "#!/usr/bin/env python3\n")
	locked := writeFile(t, root, "locked.py", "#!/usr/bin/env python3\n")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}

	scanner := NewPythonScanner(nil)
	files, err := scanner.DiscoverScripts(context.Background(), root)
	if err != nil {
		t.Fatalf("DiscoverScripts() error = %v", err)
	}

	if len(files) != 1 || files[0].Path != "readable.py" {
		t.Errorf("DiscoverScripts() = %v, want only readable.py", files.Paths())
	}
}

func TestShebangScanner_InvalidPattern(t *testing.T) {
	_, err := NewShebangScanner("(unclosed", nil)
	if err == nil {
		t.Error("NewShebangScanner() with invalid pattern should return error")
	}
}

func TestShebangScanner_MissingRoot(t *testing.T) {
	scanner := NewPythonScanner(nil)

	files, err := scanner.DiscoverScripts(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("DiscoverScripts() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("DiscoverScripts() on missing root = %v, want empty", files.Paths())
	}
}
