package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func mkWorkspace(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"`+name+`"}`), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHasManifest(t *testing.T) {
	dir := t.TempDir()
	if hasManifest(dir) {
		t.Error("hasManifest = true for empty dir")
	}

	mkWorkspace(t, dir, "app")
	if !hasManifest(filepath.Join(dir, "app")) {
		t.Error("hasManifest = false for workspace dir")
	}
}

func TestDiscoverWorkspaces(t *testing.T) {
	root := t.TempDir()
	mkWorkspace(t, root, "app", "tools")

	// Directories that must not be reported as candidates.
	for _, name := range []string{"node_modules/left-pad", ".git", "docs"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "node_modules", "left-pad", "package.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	got := discoverWorkspaces(root)
	if len(got) != 2 {
		t.Fatalf("discovered %d candidates, want 2: %v", len(got), got)
	}
	names := map[string]bool{}
	for _, c := range got {
		names[c.Name] = true
		if !filepath.IsAbs(c.Dir) {
			t.Errorf("candidate dir %q should be absolute", c.Dir)
		}
	}
	if !names["app"] || !names["tools"] {
		t.Errorf("candidates = %v, want app and tools", names)
	}
}

func TestDiscoverWorkspaces_MissingDir(t *testing.T) {
	if got := discoverWorkspaces(filepath.Join(t.TempDir(), "nope")); got != nil {
		t.Errorf("discoverWorkspaces = %v, want nil", got)
	}
}
