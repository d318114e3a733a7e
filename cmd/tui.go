package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/player"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/ui"
)

// TUI launches the interactive terminal UI for browsing and preview playback.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	if r.engine == nil {
		return fmt.Errorf("%w: feed engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/sportify-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	controller := r.controller
	if controller == nil {
		source, err := player.ExecSource(fileLogger)
		if err != nil {
			return err
		}
		controller = player.NewController(source, fileLogger)
	}

	model := ui.NewModel(ctx, r.catalog, r.engine, r.previews, controller)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	controller.Stop()
	return nil
}
