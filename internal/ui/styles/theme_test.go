// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestNewPlainTheme_NoEscapes(t *testing.T) {
	theme := NewPlainTheme()
	if theme.ColorProfile != termenv.Ascii {
		t.Fatalf("ColorProfile = %v, want Ascii", theme.ColorProfile)
	}

	out := theme.H1.Render("Title") + theme.Bold.Render("b") + theme.InlineCode.Render("x")
	if strings.Contains(out, "\x1b[38") || strings.Contains(out, "\x1b[48") {
		t.Errorf("plain theme emitted color escapes: %q", out)
	}
	if got := ansi.Strip(out); got != "Titlebx" {
		t.Errorf("stripped output = %q, want %q", got, "Titlebx")
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}

	theme := NewPlainTheme()
	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tc.width, got, tc.want)
		}
	}
}
