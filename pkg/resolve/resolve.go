// Package resolve ties the dependency pipeline together: query the package
// manager, decode the tree, collect the closure, rewrite store paths, and
// merge the optional distribution overlay.
//
// The pipeline is the same for the CLI and the HTTP API; both construct a
// [Resolver] and call [Resolver.Resolve]. Each call is self-contained: the
// external tool is re-queried and on-disk state re-checked every time, since
// the installed layout may have changed between calls. Nothing is cached
// across invocations.
//
// # Stages
//
//  1. Query: run the production dependency listing for the workspace
//  2. Parse: decode the listing into workspace entries
//  3. Collect: walk the entries into a deduplicated ordered path set
//  4. Rewrite: swap virtual-store paths for hoisted links where present
//  5. Overlay: repeat 1-4 for the staged distribution copy, if it exists,
//     and union the results
//
// # Usage
//
//	r := resolve.New(resolve.Options{})
//	paths, err := r.Resolve(ctx, "/repo/app")
//	if err != nil {
//	    log.Fatal(err)
//	}
package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/depclose/depclose/pkg/closure"
	"github.com/depclose/depclose/pkg/npmtree"
	"github.com/depclose/depclose/pkg/observability"
	"github.com/depclose/depclose/pkg/store"
)

// DefaultOverlayBase is where a staged distribution copy of a workspace lives
// relative to the repository root.
var DefaultOverlayBase = filepath.Join(".build", "distro", "npm")

// Options configures a Resolver.
type Options struct {
	// LinkDir is the dependency link directory name (default: node_modules).
	LinkDir string
	// StoreMarker is the virtual store directory name (default: .pnpm).
	StoreMarker string
	// RepoRoot anchors the overlay substitution. The overlay root for a
	// workspace is <RepoRoot>/<OverlayBase>/<workspace relative to
	// RepoRoot>. Empty means the workspace itself is the repository root.
	RepoRoot string
	// OverlayBase is the overlay directory relative to RepoRoot
	// (default: .build/distro/npm). Set to "-" to disable the overlay
	// step entirely.
	OverlayBase string
	// Source supplies raw tree data (default: pnpm via ExecSource).
	Source npmtree.Source
	// Logger receives soft-failure diagnostics (optional).
	Logger func(string, ...any)
}

// withDefaults returns a copy of Options with zero values replaced.
func (o Options) withDefaults() Options {
	opts := o
	if opts.LinkDir == "" {
		opts.LinkDir = store.DefaultLinkDir
	}
	if opts.StoreMarker == "" {
		opts.StoreMarker = store.DefaultStoreMarker
	}
	if opts.OverlayBase == "" {
		opts.OverlayBase = DefaultOverlayBase
	}
	if opts.Source == nil {
		opts.Source = &npmtree.ExecSource{}
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver computes production dependency closures for workspaces.
type Resolver struct {
	opts Options
}

// New creates a Resolver with the given options.
func New(opts Options) *Resolver {
	return &Resolver{opts: opts.withDefaults()}
}

// Resolve computes the deduplicated, ordered list of on-disk directories that
// make up the production dependency closure of the workspace directory.
//
// Primary-workspace failure is fatal. Overlay failure is not: the overlay is
// best-effort, so a failing overlay chain logs a warning and the primary
// result is returned on its own. An absent overlay directory is the common
// case and is skipped silently.
func (r *Resolver) Resolve(ctx context.Context, workspace string) (paths []string, err error) {
	start := time.Now()
	defer func() {
		observability.Resolution().OnResolveComplete(ctx, workspace, len(paths), time.Since(start), err)
	}()

	primary, err := r.resolveRoot(ctx, workspace)
	if err != nil {
		return nil, err
	}

	overlay := r.OverlayRoot(workspace)
	if overlay == "" {
		return primary, nil
	}
	if info, err := os.Stat(overlay); err != nil || !info.IsDir() {
		return primary, nil
	}

	secondary, err := r.resolveRoot(ctx, overlay)
	if err != nil {
		r.opts.Logger("overlay resolution failed: %s: %v", overlay, err)
		return primary, nil
	}

	return union(primary, secondary), nil
}

// resolveRoot runs the query → parse → collect → rewrite chain for one root.
func (r *Resolver) resolveRoot(ctx context.Context, root string) ([]string, error) {
	observability.Resolution().OnQueryStart(ctx, root)
	queryStart := time.Now()
	raw, err := r.opts.Source.Query(ctx, root)
	observability.Resolution().OnQueryComplete(ctx, root, len(raw), time.Since(queryStart), err)
	if err != nil {
		return nil, err
	}

	entries, err := npmtree.Parse(raw)
	if err != nil {
		return nil, err
	}

	set := closure.Collect(entries)

	res := &store.Resolver{LinkDir: r.opts.LinkDir, StoreMarker: r.opts.StoreMarker}
	return res.Resolve(root, set.Paths()), nil
}

// OverlayRoot derives the overlay root for workspace, or "" when the overlay
// step is disabled or the workspace escapes the repository root.
func (r *Resolver) OverlayRoot(workspace string) string {
	if r.opts.OverlayBase == "-" {
		return ""
	}
	root := r.opts.RepoRoot
	if root == "" {
		root = workspace
	}
	rel, err := filepath.Rel(root, workspace)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.Join(root, r.opts.OverlayBase, rel)
}

// union appends the secondary paths to the primary ones, collapsing
// duplicates to their first (primary-favored) occurrence.
func union(primary, secondary []string) []string {
	set := closure.NewPathSet()
	for _, p := range primary {
		set.Add(p)
	}
	for _, p := range secondary {
		set.Add(p)
	}
	return set.Paths()
}
