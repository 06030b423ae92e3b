package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/inbound/httpapi"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/history"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/report"
	"github.com/a11yaudit/a11yaudit/internal/application"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var (
		outDir string
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report directory and a JSON API over it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			dir := outputDir(cfg, outDir)

			q := application.NewQueryService(report.NewSnapshotReader(), history.New())
			srv := &http.Server{
				Addr:         addr,
				Handler:      httpapi.NewRouter(q, dir, g.logger),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				g.logger.Info("server listening", "addr", addr, "dir", dir)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			g.logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
