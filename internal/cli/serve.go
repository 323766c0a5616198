package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/runstack/runstack/internal/server"
)

// defaultListen is the serve command's bind address when neither flag nor
// config set one.
const defaultListen = ":8080"

// serveCommand creates the serve command: expose plans, groupings, and the
// graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		in     inputOpts
		listen string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plans and groupings over HTTP",
		Long: `Serve the planning API over HTTP. The manifest is loaded once at
startup; every response is recomputed from it per request.

Endpoints:
  GET /healthz        liveness probe
  GET /api/plan       global order; ?target= restricts to one unit
  GET /api/groups     fan-in grouping, same ?target= semantics
  GET /api/graph.dot  Graphviz DOT

Examples:
  runstack serve
  runstack serve --listen :9090 -m deps.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMap(in)
			if err != nil {
				return err
			}

			addr := value(listen, c.cfg.Listen, defaultListen)
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(m, c.Logger).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Infof("Serving on %s", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			c.Logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", "", "bind address (default :8080)")
	return cmd
}
