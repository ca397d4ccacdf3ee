// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/ui/widget"
)

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the assistant widget",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnsTerminal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd.Context())
		},
	}
}

// buildWidget creates the widget for a fresh session.
func (a *App) buildWidget(ctx context.Context) widget.Model {
	ctrl := a.newController()
	return widget.New(ctrl, widget.Options{
		Title:          a.Config.Assistant.Title,
		ShowTimestamps: a.Config.UI.ShowTimestamps,
		MaxWidth:       a.Config.UI.Width,
		Context:        ctx,
		Logger:         &a.Log,
		OnClose: func() {
			a.Log.Info().Int("turns", len(ctrl.Turns())).Msg("widget closed")
		},
	})
}

func (a *App) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w := a.buildWidget(ctx)

	p := tea.NewProgram(w,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(a.In),
		tea.WithOutput(a.Out),
	)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "widget failed")
	}

	// Interrupted without the close key: discard the session anyway.
	if m, ok := final.(widget.Model); ok && !m.Closed() {
		m.Controller().Close()
	}
	return nil
}
