package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/disaster-atlas/internal/adapter/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpadapter.NewServer(a.cfg.HTTPAddr, a.service(), httpadapter.Options{
		RateLimitRPS:   a.cfg.RateLimitRPS,
		ChartCacheSize: a.cfg.ChartCacheSize,
	}, a.metrics, a.logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			a.logger.Error("http server error", "error", err)
			return err
		}
	}
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
