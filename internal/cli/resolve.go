package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depclose/depclose/pkg/config"
	"github.com/depclose/depclose/pkg/errors"
	pkgio "github.com/depclose/depclose/pkg/io"
	"github.com/depclose/depclose/pkg/npmtree"
	"github.com/depclose/depclose/pkg/resolve"
)

// resolverOpts holds the command-line flags shared by commands that run the
// resolution pipeline. Empty string values fall back to the workspace's
// depclose.toml and then to built-in defaults.
type resolverOpts struct {
	configPath  string // explicit config file (overrides discovery)
	repoRoot    string // repository root anchoring the overlay
	overlayBase string // overlay base relative to the repo root
	linkDir     string // dependency link directory name
	storeMarker string // virtual store directory name
	bin         string // package manager executable override
	noOverlay   bool   // skip the distribution overlay step
}

// registerFlags attaches the shared resolver flags to cmd.
func (o *resolverOpts) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "config file (default: <workspace>/depclose.toml if present)")
	cmd.Flags().StringVar(&o.repoRoot, "repo-root", "", "repository root for the overlay substitution (default: workspace)")
	cmd.Flags().StringVar(&o.overlayBase, "overlay-base", "", "overlay directory relative to the repo root (default: .build/distro/npm)")
	cmd.Flags().StringVar(&o.linkDir, "link-dir", "", "dependency link directory name (default: node_modules)")
	cmd.Flags().StringVar(&o.storeMarker, "store-marker", "", "virtual store directory name (default: .pnpm)")
	cmd.Flags().StringVar(&o.bin, "bin", "", "package manager executable (default: pnpm)")
	cmd.Flags().BoolVar(&o.noOverlay, "no-overlay", false, "skip the distribution overlay step")
}

// loadConfig loads the explicit config file, or discovers one in dir.
func (o *resolverOpts) loadConfig(dir string) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.Discover(dir)
}

// resolveOptions merges flags with the workspace config into resolve.Options.
// Flags win over config values; both fall back to pipeline defaults. The
// loaded config is returned alongside so callers needing other sections
// (e.g. [serve]) do not load the file twice.
func (o *resolverOpts) resolveOptions(ctx context.Context, dir string) (resolve.Options, *config.Config, error) {
	cfg, err := o.loadConfig(dir)
	if err != nil {
		return resolve.Options{}, nil, err
	}

	pick := func(flag, file string) string {
		if flag != "" {
			return flag
		}
		return file
	}

	logger := loggerFromContext(ctx)
	opts := resolve.Options{
		LinkDir:     pick(o.linkDir, cfg.Resolver.LinkDir),
		StoreMarker: pick(o.storeMarker, cfg.Resolver.StoreMarker),
		RepoRoot:    pick(o.repoRoot, cfg.Resolver.RepoRoot),
		OverlayBase: pick(o.overlayBase, cfg.Resolver.OverlayBase),
		Source:      &npmtree.ExecSource{Bin: pick(o.bin, cfg.Resolver.Bin)},
		Logger:      func(msg string, args ...any) { logger.Warnf(msg, args...) },
	}
	if o.noOverlay {
		opts.OverlayBase = "-"
	}
	return opts, cfg, nil
}

// newResolveCmd creates the resolve command.
func newResolveCmd() *cobra.Command {
	var (
		opts    resolverOpts
		output  string
		text    bool
		noInput bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [workspace]",
		Short: "Compute the production dependency closure of a pnpm workspace",
		Long: `Resolve the deduplicated set of on-disk directories making up a workspace's
production dependency closure.

The workspace defaults to the current directory. When the given directory is
not itself a workspace but contains workspace subdirectories, an interactive
picker is shown (disable with --no-input).

Examples:
  depclose resolve                         # current directory
  depclose resolve /repo/app               # explicit workspace
  depclose resolve /repo/app -o paths.json # write JSON to a file
  depclose resolve /repo/app --text        # one path per line`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runResolve(c.Context(), &opts, dir, output, text, noInput)
		},
	}

	opts.registerFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&text, "text", false, "print one path per line instead of JSON")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt for workspace selection")

	return cmd
}

// runResolve resolves the workspace and writes the resulting path list.
func runResolve(ctx context.Context, opts *resolverOpts, dir, output string, text, noInput bool) error {
	logger := loggerFromContext(ctx)

	dir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve workspace path %s", dir)
	}

	if !hasManifest(dir) {
		candidates := discoverWorkspaces(dir)
		switch {
		case len(candidates) == 0:
			printWarning("No package.json in %s", dir)
		case noInput:
			return errors.New(errors.ErrCodeInvalidInput, "%s contains %d workspaces; pick one explicitly", dir, len(candidates))
		default:
			printInfo("Found %d workspaces under %s", len(candidates), StyleHighlight.Render(dir))
			printNewline()
			picked, err := pickWorkspace(candidates)
			if err != nil {
				return err
			}
			if picked == "" {
				printDetail("No selection made")
				return nil
			}
			dir = picked
		}
	}

	if err := errors.ValidateWorkspaceDir(dir); err != nil {
		return err
	}

	ropts, _, err := opts.resolveOptions(ctx, dir)
	if err != nil {
		return err
	}

	logger.Debugf("Resolving production dependencies of %s", dir)
	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Resolving production dependencies...")

	paths, err := resolve.New(ropts).Resolve(ctx, dir)
	if err != nil {
		spinner.StopWithError("Resolution failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Resolved %d dependency paths", len(paths)))

	return writePaths(paths, output, text, logger)
}

// writePaths serializes paths to the specified file (or stdout if empty),
// either as JSON or one path per line.
func writePaths(paths []string, path string, text bool, logger interface{ Debugf(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if text {
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
	} else if err := pkgio.WritePaths(paths, out); err != nil {
		return err
	}

	if path != "" {
		logger.Debugf("Wrote %d paths to %s", len(paths), path)
		printSuccess("Closure written")
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
