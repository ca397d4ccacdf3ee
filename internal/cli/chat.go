// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/config"
	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/ui/components"
)

// chatPrompt is shown before each line of input.
const chatPrompt = "allie> "

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-based conversation",
		Long: `Start an interactive conversation in the terminal.

While suggestions are shown, enter their number to ask one. Input history
is kept in ~/.allie/chat_history.

Interactive Commands:
  /help      Show available commands
  /quit      Exit chat (also: exit, quit, Ctrl+D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := NewChatInput()
			defer input.Close()

			ctrl := app.newController()
			defer ctrl.Close()
			return app.chatLoop(cmd.Context(), ctrl, input.ReadInput)
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatInput provides line editing and persistent history for chat.
type ChatInput struct {
	line        *liner.State
	historyFile string
}

// NewChatInput creates a line editor and loads saved history.
func NewChatInput() *ChatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatInput{line: line, historyFile: filepath.Join(dir, "chat_history")}

	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput reads a line with the given prompt.
func (c *ChatInput) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *ChatInput) Close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0755); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// chatLoop runs the conversation until read fails or the user quits.
func (a *App) chatLoop(ctx context.Context, ctrl *session.Controller, read func(string) (string, error)) error {
	theme := themeFor(a.Out)
	width := outputWidth(a.Out, a.Config.UI.Width)

	fmt.Fprintln(a.Out, theme.HeaderTitle.Render(a.Config.Assistant.Title))
	suggestions := components.NewSuggestionList(theme)
	suggestions.SetItems(ctrl.Suggestions())
	if sv := suggestions.View(width); sv != "" {
		fmt.Fprintln(a.Out, sv)
	}
	fmt.Fprintln(a.Out)

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := read(chatPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.Out)
				return nil
			}
			return errors.Wrap(err, "failed to read input")
		}

		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == "/quit" || input == "/q" || strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit"):
			return nil
		case input == "/help" || input == "/h":
			fmt.Fprintln(a.Out, theme.StatusBar.Render("Type a question and press Enter. /quit to exit."))
			continue
		}

		ex, err := a.submitChatInput(ctrl, input)
		if err != nil {
			fmt.Fprintln(a.Out, theme.StatusBar.Render(err.Error()))
			continue
		}

		fmt.Fprintln(a.Out, theme.Loading.Render(components.ThinkingText))
		if !ctrl.Resolve(ex.Run(ctx)) {
			return nil
		}

		turns := ctrl.Turns()
		a.printAnswer(turns[len(turns)-1], false)
		fmt.Fprintln(a.Out)
	}
}

// submitChatInput treats a bare number as a suggestion pick while
// suggestions are offered.
func (a *App) submitChatInput(ctrl *session.Controller, input string) (*session.Exchange, error) {
	if n, err := strconv.Atoi(input); err == nil && len(ctrl.Suggestions()) > 0 {
		return ctrl.SelectSuggestionAt(n - 1)
	}
	return ctrl.Submit(input)
}
