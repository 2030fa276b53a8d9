package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/config"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/state"
)

// Run starts the terminal UI over store and blocks until the user quits or
// ctx is cancelled. Logs go to cfg.LogFile so the alt screen stays clean.
func Run(ctx context.Context, cfg *config.Config, store service.Store) error {
	logger, f, err := logging.OpenFile(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	// Request tracing from the store would otherwise land on the alt screen.
	if logging.Redirect(store, logger) {
		defer logging.Redirect(store, logging.Discard())
	}

	logger.Info("ui started", "api_url", cfg.APIURL)
	ctl := state.New(store, state.WithLogger(logger))

	program := tea.NewProgram(NewModel(ctx, ctl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal ui: %w", err)
	}
	logger.Info("ui stopped")
	return nil
}
