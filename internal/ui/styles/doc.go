// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the allie widget.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. Theme groups the styles used by the header, turn bubbles,
markdown elements, suggestions and input area.

	theme := styles.NewTheme()
	title := theme.HeaderTitle.Render("Allie")

NewPlainTheme returns the same layout with no color, for piped output
and golden tests.
*/
package styles
