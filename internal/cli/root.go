package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depclose/depclose/pkg/buildinfo"
)

// Execute runs the depclose CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (resolve, graph,
// serve, completion), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	return rootCommand().ExecuteContext(ctx)
}

// rootCommand builds the root command with all subcommands registered.
func rootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "depclose",
		Short:        "depclose computes production dependency closures of pnpm workspaces",
		Long:         `depclose resolves the definitive, deduplicated set of on-disk directories that make up a pnpm workspace's production dependency closure, translating virtual-store paths into hoisted links and merging staged distribution overlays.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root
}
