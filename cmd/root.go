// Package cmd implements the bookshelf command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"bookshelf/config"
	"bookshelf/controller"
	"bookshelf/db"
	"bookshelf/render"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "bookshelf",
	Short:        "Keep a catalog of books",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, addCmd, listCmd, removeCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// app is what every command needs: settings, a logger and a booted controller.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	controller *controller.Controller
	table      *render.Table
	close      func() error
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)

	slot, closeSlot, err := db.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	table := render.NewTable()
	ctrl, err := controller.Boot(ctx, slot, table, logger)
	if err != nil {
		closeSlot()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, controller: ctrl, table: table, close: closeSlot}, nil
}
