package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/server"
	"github.com/desertthunder/jukebox/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the terminal jukebox alongside the player-only page.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	if err := r.useFileLogger(cmd.String("log")); err != nil {
		return err
	}

	a, err := r.newApp()
	if err != nil {
		return fmt.Errorf("failed to build jukebox: %w", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ctx, r.listenAddr(cmd), a.handler, r.logger, ready)
	}()

	var bound string
	select {
	case bound = <-ready:
	case err := <-errCh:
		return fmt.Errorf("failed to start player page: %w", err)
	}

	playerURL := "http://" + bound + "/player"
	if !cmd.Bool("no-open") {
		if err := r.openBrowser(playerURL); err != nil {
			r.logger.Warn("failed to open player page", "url", playerURL, "error", err)
		}
	}

	model := ui.NewModel(ctx, a.jukebox, playerURL)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	cancel()
	return <-errCh
}
