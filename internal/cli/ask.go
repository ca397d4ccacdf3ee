// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/model"
	"github.com/jeranaias/allie-tui/internal/ui/components"
)

func newAskCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask one question and print the answer",
		Long: `Send a single question to the chat endpoint and print the answer.

The answer is rendered for the terminal, followed by its sources. When the
exchange fails the fallback text is printed and the command exits non-zero.`,
		Example: `  allie ask "What is Allora?"
  allie ask How do workers earn rewards --raw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" {
				return &UsageError{Msg: "question is empty"}
			}

			ctrl := app.newController()
			defer ctrl.Close()

			turn, err := ctrl.Ask(cmd.Context(), question)
			if turn.ID != "" {
				app.printAnswer(turn, raw)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer markdown without rendering")
	return cmd
}

// printAnswer writes an assistant turn to app.Out. Raw output keeps the
// markdown but not escape sequences from the endpoint.
func (a *App) printAnswer(turn model.Turn, raw bool) {
	if raw || turn.Fallback {
		fmt.Fprintln(a.Out, components.Sanitize(turn.Text))
	} else {
		width := outputWidth(a.Out, a.Config.UI.Width)
		fmt.Fprintln(a.Out, components.RenderMarkdown(themeFor(a.Out), turn.Text, width))
	}
	if turn.HasSources() {
		fmt.Fprintln(a.Out)
		fmt.Fprintln(a.Out, components.RenderSources(themeFor(a.Out), turn.Sources))
	}
}
