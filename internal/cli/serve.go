package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/depclose/depclose/pkg/api"
	"github.com/depclose/depclose/pkg/resolve"
)

// defaultAddr is the default HTTP listen address.
const defaultAddr = ":8080"

// newServeCmd creates the serve command exposing the resolver over HTTP.
func newServeCmd() *cobra.Command {
	var (
		opts resolverOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver as a small HTTP API",
		Long: `Serve the resolution pipeline over HTTP.

Endpoints:
  GET  /healthz      liveness probe
  POST /v1/resolve   {"dir": "/abs/workspace"} -> {"paths": [...]}`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts, addr)
		},
	}

	opts.registerFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: :8080)")

	return cmd
}

func runServe(ctx context.Context, opts *resolverOpts, addr string) error {
	logger := loggerFromContext(ctx)

	ropts, cfg, err := opts.resolveOptions(ctx, ".")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if addr == "" {
		addr = defaultAddr
	}

	server := api.NewServer(resolve.New(ropts), logger)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shut down gracefully when the command context is cancelled (SIGINT).
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Infof("Listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
