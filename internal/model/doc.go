// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns.
//
// # Key Types
//
//   - Turn: a single message with speaker, text, timestamp and sources
//   - Speaker: turn origin (user or assistant)
//
// # Usage
//
//	q := model.NewUserTurn("What is the Allora Network?")
//	a := model.NewAssistantTurn("Allora is ...", []string{"whitepaper.pdf"})
package model
