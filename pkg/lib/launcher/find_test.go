//go:build unix

package launcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProgramByName(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "tool")
	if err := os.WriteFile(prog, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindProgramByName("tool", []string{"/nonexistent", dir})
	if err != nil || got != prog {
		t.Fatalf("expected %s, got %q %v", prog, got, err)
	}
	if _, err := FindProgramByName("data", []string{dir}); err == nil {
		t.Fatalf("non-executable file must not be found")
	}
	if _, err := FindProgramByName("tool", []string{"/nonexistent"}); err == nil {
		t.Fatalf("expected not found")
	}
	if got, err := FindProgramByName("./relative/tool", nil); err != nil || got != "./relative/tool" {
		t.Fatalf("paths with separators are returned as-is, got %q %v", got, err)
	}
	if got, err := FindProgramByName("sh", nil); err != nil || got == "" {
		t.Fatalf("sh should be found in PATH, got %q %v", got, err)
	}
	if _, err := FindProgramByName("", nil); err == nil {
		t.Fatalf("empty name must fail")
	}
}
