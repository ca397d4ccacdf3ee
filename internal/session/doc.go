// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session sequences a single assistant conversation.
//
// A Controller owns the ordered list of turns, the suggestions offered
// before the first message, and the phase of the conversation:
//
//	Idle -> Composing -> AwaitingResponse -> Idle
//
// At most one exchange is in flight. Submitting returns an Exchange whose
// Run method performs the network call; the caller runs it wherever is
// convenient (a Bubble Tea command, a goroutine, inline) and hands the
// Outcome back to Resolve. Outcomes that arrive after Close, or for an
// exchange that is no longer pending, are dropped.
//
// # Usage
//
//	ctrl := session.New(session.Options{Sender: client})
//	ex, err := ctrl.Submit("What is the Allora Network?")
//	if err != nil {
//	    return err // ErrInputRejected, ErrBusy or ErrClosed
//	}
//	ctrl.Resolve(ex.Run(ctx))
//
// Every failure of the remote call becomes the same assistant fallback
// turn. The failure kind is only visible in the log.
package session
