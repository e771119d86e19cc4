package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive movie browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.files == nil || r.watchlist == nil {
		return fmt.Errorf("%w: state directory not initialized", shared.ErrStorage)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cinemate-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pick up watchlist writes made by other processes while the TUI runs.
	if err := r.watchlist.WatchExternal(ctx); err != nil {
		fileLogger.Warn("external watchlist watch unavailable", "error", err)
	}

	model := ui.NewModel(ctx, ui.Deps{
		Catalog:   r.catalog,
		Watchlist: r.watchlist,
		Filters:   r.filters,
		Files:     r.files,
		Cache:     r.cache,
		Config:    r.config.UI,
		Logger:    fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
