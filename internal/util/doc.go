// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the allie packages.
//
//   - AtomicWriteFile: crash-safe file replacement, used for saved config
//   - StringWidth, TruncateWidth: terminal column arithmetic
//   - FirstLine: one-line previews for log fields
package util
