package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codelayers/strata/internal/config"
	"github.com/codelayers/strata/internal/httpapi"
	"github.com/codelayers/strata/internal/observability"
	"github.com/codelayers/strata/pkg/cache"
	"github.com/codelayers/strata/pkg/classify"
)

// shutdownGrace bounds how long in-flight requests may run after a
// termination signal.
const shutdownGrace = 10 * time.Second

// NewServeCommand runs the HTTP classification server.
func NewServeCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose classification over HTTP",
		Long: `Serve starts an HTTP server with POST /classify, GET /healthz and,
unless disabled, GET /metrics in Prometheus exposition format. The
server drains in-flight requests on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}

			log := newLogger(debug)

			var metrics *observability.Metrics
			if cfg.Serve.Metrics && !noMetrics {
				metrics = observability.NewMetrics()
			}

			var store *cache.Store
			if cfg.Cache.Enabled {
				store, err = cache.NewStore(cfg.Cache.Dir)
				if err != nil {
					return err
				}
			}

			api := httpapi.NewAPI(classify.NewEngine(), httpapi.Options{
				MaxRequestSize: cfg.Serve.MaxRequestSize,
				Metrics:        metrics,
				Store:          store,
				Logger:         log,
			})

			return runServer(cmd.Context(), api.NewServer(addr), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServeAddr, "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// runServer serves until the context is cancelled or a termination
// signal arrives, then drains.
func runServer(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Info("http server listening", "addr", srv.Addr)

		serveErr := srv.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr

			return
		}

		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)

		return fmt.Errorf("serve: shutdown: %w", err)
	}

	return <-errCh
}
