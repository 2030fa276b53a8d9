// Package main is the entry point for the todoctl CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"todoctl/internal/backend/rest"
	"todoctl/internal/cli"
	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/logging"
	"todoctl/internal/metrics"
	"todoctl/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	collectors := metrics.NewCollectors(prometheus.DefaultRegisterer)

	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		client, err := rest.New(cfg, rest.WithLogger(logging.New(os.Stderr, cfg)))
		if err != nil {
			return nil, err
		}
		return metrics.Instrument(client, collectors), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
