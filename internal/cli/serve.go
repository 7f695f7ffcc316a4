package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"contracting/internal/backend"
	"contracting/internal/config"
	"contracting/internal/dashboard"
	apphttp "contracting/internal/http"
	applog "contracting/internal/log"
	"contracting/internal/metrics"
	"contracting/internal/services"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := SetupLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := GracefulShutdown(cmd.Context(), logger)
			defer cancel()
			return Serve(ctx, cfg, logger)
		},
	}
}

// App is the wired server and the cleanup that releases its backend.
type App struct {
	Server  *apphttp.Server
	Cleanup backend.CleanupFunc
}

// Build wires the backend, services and HTTP server described by cfg.
func Build(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", backendCfg.Type, err)
	}

	m := metrics.New()
	srv := apphttp.NewServer(cfg, apphttp.Deps{
		Resources: services.New(result.Store, result.Publisher, logger, m),
		Dashboard: dashboard.NewService(result.Store, logger, m),
		Logger:    logger,
		Metrics:   m,
	})
	return &App{Server: srv, Cleanup: result.Cleanup}, nil
}

// Serve runs the API until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config, logger *applog.Logger) error {
	app, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting contracting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
