// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual pieces of the allie widget:
// header, turn bubbles with a sources footer, the terminal markdown
// renderer, code blocks, the suggestion list and the thinking indicator.
//
// Components are pure view functions over a styles.Theme. They hold no
// conversation state; the widget feeds them from session.Controller.
package components
