package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/vancomm/classic-mines/internal/app"
	"github.com/vancomm/classic-mines/internal/config"
	"github.com/vancomm/classic-mines/internal/mines"
)

func newLogger() *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger()
	mines.Log = logger

	cookies, err := config.NewCookies()
	if err != nil {
		return fmt.Errorf("failed to read cookies config: %w", err)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return fmt.Errorf("failed to read ws config: %w", err)
	}

	a := app.New(logger, cookies, ws)
	a.IdleTimeout = cmd.Duration("idle-timeout")
	return a.Start(ctx, cmd.String("addr"))
}
