// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use for wrapping
	MinTerminalWidth = 40
)

// isTerminal reports whether w is a terminal device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of w, or 80x24 when it is not a terminal.
func terminalSize(w io.Writer) (width, height int) {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth, 24
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultTerminalWidth, 24
	}
	return width, height
}

// outputWidth returns the wrap width for w, capped by limit when positive.
func outputWidth(w io.Writer, limit int) int {
	width, _ := terminalSize(w)
	if limit > 0 && limit < width {
		width = limit
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return width
}

// colorEnabled respects NO_COLOR and FORCE_COLOR before checking for a TTY.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminal(w)
}

// themeFor returns a colored theme for terminals and a plain one otherwise.
func themeFor(w io.Writer) *styles.Theme {
	if colorEnabled(w) {
		return styles.NewTheme()
	}
	return styles.NewPlainTheme()
}
