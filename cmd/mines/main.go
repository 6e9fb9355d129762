package main

import (
	"context"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/vancomm/classic-mines/internal/config"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to load .env: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	app := &cli.Command{
		Name:  "mines",
		Usage: "10x10 minesweeper with 10 mines",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the game over HTTP and WebSocket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   ":8080",
						Usage:   "listen address",
						Sources: cli.EnvVars("APP_ADDR"),
					},
					&cli.DurationFlag{
						Name:    "idle-timeout",
						Value:   30 * time.Minute,
						Usage:   "drop games untouched for this long",
						Sources: cli.EnvVars("SESSION_IDLE_TIMEOUT"),
					},
				},
				Action: serve,
			},
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "log-file",
						Value:   "mines.log",
						Usage:   "where to write logs, empty to disable",
						Sources: cli.EnvVars("MINES_LOG_FILE"),
					},
				},
				Action: play,
			},
		},
		DefaultCommand: "play",
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "exit reason: %s\n", err)
		os.Exit(1)
	}
}
