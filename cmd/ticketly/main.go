package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ticketly/ticketly/internal/buildinfo"
	"github.com/ticketly/ticketly/internal/cli"
	"github.com/ticketly/ticketly/internal/config"
	"github.com/ticketly/ticketly/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, store, err := cli.NewAppFromConfig(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "closing storage", "error", err)
		}
	}()

	app.Run(ctx)
}
