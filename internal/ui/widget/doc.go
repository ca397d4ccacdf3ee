// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget is the Bubble Tea front end of an allie session.
//
// The widget shows the header, the suggested questions of a fresh
// session, the conversation and an input line. Submitting runs the
// exchange as a tea.Cmd off the update loop; its outcome comes back as a
// message and is recorded with session.Controller.Resolve.
//
//	ctrl := session.New(session.Options{Sender: client})
//	w := widget.New(ctrl, widget.Options{OnClose: func() { log.Info().Msg("closed") }})
//	_, err := tea.NewProgram(w, tea.WithAltScreen()).Run()
package widget
