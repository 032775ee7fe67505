// Package main is the entry point for the habitask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"habitask/internal/backend/addtask"
	"habitask/internal/cli"
	"habitask/internal/commands"
	"habitask/internal/config"
	"habitask/internal/service"
)

func main() {
	// Cancel on interrupt so an in-flight submission or prompt is abandoned
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		client, err := addtask.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
