package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/metrics"
	"todoctl/internal/service"
	"todoctl/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive terminal UI.
type UICmd struct {
	metricsAddr string
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the terminal UI" }
func (c *UICmd) Usage() string     { return "todoctl ui [--metrics-addr <addr>]" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.metricsAddr, "metrics-addr", "", "")
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := cfg.MetricsAddr
	if c.metricsAddr != "" {
		addr = c.metricsAddr
	}

	// Quitting the UI stops the metrics server; a metrics failure closes the UI.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if addr != "" {
		g.Go(func() error {
			if err := metrics.Serve(gctx, addr, prometheus.DefaultGatherer); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return ui.Run(gctx, cfg, store)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
