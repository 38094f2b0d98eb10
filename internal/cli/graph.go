package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depclose/depclose/pkg/config"
	"github.com/depclose/depclose/pkg/errors"
	"github.com/depclose/depclose/pkg/npmtree"
	"github.com/depclose/depclose/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string // "dot" or "svg"
	output   string // output file path (stdout if empty)
	detailed bool   // include store paths in node labels
	bin      string // package manager executable override
}

// source builds the tree source for dir, preferring the --bin flag over a
// bin setting in the workspace's depclose.toml, as the resolve command does.
func (o *graphOpts) source(dir string) (*npmtree.ExecSource, error) {
	cfg, err := config.Discover(dir)
	if err != nil {
		return nil, err
	}
	bin := o.bin
	if bin == "" {
		bin = cfg.Resolver.Bin
	}
	return &npmtree.ExecSource{Bin: bin}, nil
}

// newGraphCmd creates the graph command. It runs the production dependency
// query for a workspace and renders the decoded tree as Graphviz output,
// without the store-path rewrite or overlay stages.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph [workspace]",
		Short: "Render the production dependency tree as DOT or SVG",
		Long: `Render a workspace's production dependency tree as a Graphviz graph.

Examples:
  depclose graph /repo/app                      # DOT to stdout
  depclose graph /repo/app -f svg -o deps.svg   # SVG to a file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runGraph(c.Context(), &opts, dir)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include store paths in node labels")
	cmd.Flags().StringVar(&opts.bin, "bin", "", "package manager executable (default: pnpm)")

	return cmd
}

func runGraph(ctx context.Context, opts *graphOpts, dir string) error {
	if opts.format != "dot" && opts.format != "svg" {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format: %s (available: dot, svg)", opts.format)
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve workspace path %s", dir)
	}
	if err := errors.ValidateWorkspaceDir(dir); err != nil {
		return err
	}

	src, err := opts.source(dir)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	logger.Debugf("Querying production dependencies of %s", dir)

	spinner := newSpinner(ctx, "Querying production dependencies...")

	raw, err := src.Query(ctx, dir)
	if err != nil {
		spinner.StopWithError("Dependency query failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	entries, err := npmtree.Parse(raw)
	if err != nil {
		return err
	}

	dot := render.ToDOT(entries, render.Options{Detailed: opts.detailed})

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.format == "svg" {
		svg, err := render.RenderSVG(dot)
		if err != nil {
			return err
		}
		if _, err := out.Write(svg); err != nil {
			return err
		}
	} else if _, err := fmt.Fprint(out, dot); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Graph generated")
		printFile(opts.output)
	}
	return nil
}
