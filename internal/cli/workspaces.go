package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// workspaceCandidate is a directory that looks like a pnpm workspace project.
type workspaceCandidate struct {
	Name string // directory name relative to the scanned root
	Dir  string // absolute path
}

// hasManifest reports whether dir contains a package.json.
func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "package.json"))
	return err == nil && !info.IsDir()
}

// discoverWorkspaces scans the immediate children of dir for directories
// containing a package.json. Hidden directories and dependency link
// directories are skipped. Used by the interactive picker when the given
// directory is not itself a workspace.
func discoverWorkspaces(dir string) []workspaceCandidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []workspaceCandidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			continue
		}
		sub := filepath.Join(dir, name)
		if hasManifest(sub) {
			out = append(out, workspaceCandidate{Name: name, Dir: sub})
		}
	}
	return out
}
