// Package main is the entry point for eventctl, the command-line front end
// to the event board.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pkordes/eventboard/internal/app"
	"github.com/pkordes/eventboard/internal/cli"
	"github.com/pkordes/eventboard/internal/config"
	"github.com/pkordes/eventboard/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	// Logs go to stderr so stdout stays clean for list and export output.
	// Info-level "store ready" lines are noise on a terminal, so the floor is warn.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: max(logLevel, slog.LevelWarn),
	}))

	root := cli.NewRootCmd(cli.Options{
		Categories: cfg.CategorySet(),
		Open: func(ctx context.Context) (*service.EventStore, func() error, error) {
			s, err := app.OpenStore(ctx, cfg.Storage, logger)
			if err != nil {
				return nil, nil, err
			}
			return s.EventStore, s.Close, nil
		},
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
