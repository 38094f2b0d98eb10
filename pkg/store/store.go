// Package store rewrites virtual-store dependency paths into their hoisted
// equivalents.
//
// pnpm installs every package version into a content-addressed virtual store
// and links a flat view of it under the workspace's node_modules directory.
// The same package is therefore reachable under two addresses:
//
//	<ws>/node_modules/.pnpm/foo@1.0.0/node_modules/foo   (virtual store)
//	<ws>/node_modules/foo                                (hoisted link)
//
// The hoisted address is the one callers want to ship, but it only exists for
// packages pnpm could hoist; conflicting version duplicates stay reachable
// solely through the nested store layout. Rewriting is therefore best-effort:
// a virtual-store path whose hoisted candidate is absent on disk passes
// through unchanged, as does any path that is not a virtual-store path at
// all.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Defaults for the pnpm on-disk layout.
const (
	DefaultLinkDir     = "node_modules"
	DefaultStoreMarker = ".pnpm"
)

// Resolver rewrites virtual-store paths for one workspace.
type Resolver struct {
	// LinkDir is the dependency link directory name. Empty means node_modules.
	LinkDir string
	// StoreMarker is the virtual store directory name inside LinkDir.
	// Empty means .pnpm.
	StoreMarker string
	// Stat overrides the existence check, for tests. Nil means os.Stat.
	Stat func(string) (os.FileInfo, error)
}

func (r *Resolver) linkDir() string {
	if r.LinkDir == "" {
		return DefaultLinkDir
	}
	return r.LinkDir
}

func (r *Resolver) marker() string {
	if r.StoreMarker == "" {
		return DefaultStoreMarker
	}
	return r.StoreMarker
}

func (r *Resolver) exists(path string) bool {
	stat := r.Stat
	if stat == nil {
		stat = os.Stat
	}
	_, err := stat(path)
	return err == nil
}

// Resolve rewrites every virtual-store path in paths whose hoisted link under
// workspace exists on disk, preserving order. Non-store paths and store paths
// without a hoisted link pass through unchanged. Resolve only reads the
// filesystem; it never creates or removes anything.
func (r *Resolver) Resolve(workspace string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = r.resolveOne(workspace, p)
	}
	return out
}

func (r *Resolver) resolveOne(workspace, path string) string {
	pkg, ok := r.PackageName(path)
	if !ok {
		return path
	}
	candidate := filepath.Join(workspace, r.linkDir(), filepath.FromSlash(pkg))
	if r.exists(candidate) {
		return candidate
	}
	return path
}

// PackageName extracts the trailing package name from a virtual-store path,
// reporting whether path has the virtual-store shape
// .../<linkDir>/<marker>/<id>/<linkDir>/<name...>. Scoped package names keep
// their internal separator, so the returned name may contain slashes
// (e.g. "@scope/pkg").
func (r *Resolver) PackageName(path string) (string, bool) {
	segs := strings.Split(filepath.ToSlash(path), "/")

	// Search from the end so nested stores resolve against the innermost
	// occurrence.
	for i := len(segs) - 1; i >= 1; i-- {
		if segs[i] != r.marker() || segs[i-1] != r.linkDir() {
			continue
		}
		// segs[i+1] is the store id, segs[i+2] must be the link dir
		// again, and everything after it is the package name.
		if i+3 >= len(segs) || segs[i+2] != r.linkDir() {
			continue
		}
		name := strings.Join(segs[i+3:], "/")
		if name == "" {
			continue
		}
		return name, true
	}
	return "", false
}
