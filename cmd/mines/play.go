package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/urfave/cli/v3"

	"github.com/vancomm/classic-mines/internal/config"
	"github.com/vancomm/classic-mines/internal/console"
	"github.com/vancomm/classic-mines/internal/mines"
)

// The terminal belongs to the board, so logs only go to the rotating file.
func setupLogging(path string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if path == "" {
		return log, nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}

func play(ctx context.Context, cmd *cli.Command) error {
	log, err := setupLogging(cmd.String("log-file"))
	if err != nil {
		return err
	}

	board := mines.New(createRand())
	log.WithField("params", mines.Params()).Info("starting terminal game")

	err = console.New(os.Stdin, os.Stdout, board, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
