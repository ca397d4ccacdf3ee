// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the allie command line.
//
// Commands:
//
//	allie                       Open the assistant widget (same as "allie tui")
//	allie ask QUESTION          Ask one question and print the answer
//	allie chat                  Line-based conversation with history
//	allie render [FILE]         Render assistant markdown (html, term, json, yaml, markdown, text)
//	allie suggest               Print a sample of suggested questions
//	allie config show|get|set|init|path
//
// Persistent flags --config, --endpoint, --log-level, --log-file and --seed
// override the loaded configuration for one invocation.
package cli
