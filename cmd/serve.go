package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/cache"
	"bookshelf/config"
	"bookshelf/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	cacher, closeCacher, err := openCacher(app.cfg)
	if err != nil {
		return err
	}
	defer closeCacher()

	if app.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:    app.cfg.Port,
		Handler: service.SetupRoutes(app.controller, cacher, app.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("listening", "addr", app.cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openCacher(cfg *config.Config) (cache.RequestCacher, func() error, error) {
	if cfg.ActivityBackend == config.BACKEND_REDIS {
		client, err := config.SetupRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.CreateRedisCache(client, cfg.ActivityMax), client.Close, nil
	}

	cacher, err := cache.CreateLRUCache(cfg.ActivityMax)
	if err != nil {
		return nil, nil, err
	}
	return cacher, func() error { return nil }, nil
}
