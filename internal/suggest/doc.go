// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest holds the catalog of starter questions shown before a
// conversation begins, and the pool that samples from it.
//
// The random source is injected so sampling is reproducible in tests:
//
//	pool := suggest.NewSeededPool(suggest.DefaultCatalog(), 42)
//	questions := pool.Sample(suggest.DefaultCount)
package suggest
