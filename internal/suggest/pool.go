// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"math/rand/v2"
	"sync"
)

// DefaultCount is how many suggestions a new conversation offers.
const DefaultCount = 3

// Sampler picks suggestions for a new conversation.
type Sampler interface {
	// Sample returns up to n distinct questions.
	Sample(n int) []string
}

// Pool samples distinct questions from a catalog, uniformly without
// replacement. It is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	catalog Catalog
	rng     *rand.Rand
}

// NewPool creates a pool drawing from catalog with the given random source.
// A nil rng uses a randomly seeded source.
func NewPool(catalog Catalog, rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pool{catalog: catalog, rng: rng}
}

// NewSeededPool creates a pool whose samples are reproducible for a seed.
func NewSeededPool(catalog Catalog, seed uint64) *Pool {
	return NewPool(catalog, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Catalog returns the catalog the pool draws from.
func (p *Pool) Catalog() Catalog {
	return p.catalog
}

// Sample returns min(n, catalog size) distinct questions in random order.
// Every subset of that size is equally likely.
func (p *Pool) Sample(n int) []string {
	size := p.catalog.Len()
	if n > size {
		n = size
	}
	if n <= 0 {
		return []string{}
	}

	p.mu.Lock()
	perm := p.rng.Perm(size)
	p.mu.Unlock()

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = p.catalog.questions[perm[i]]
	}
	return out
}

// Static is a Sampler that always returns the same questions, in order.
// Useful for hosts that want a fixed set and for tests.
type Static []string

// Sample returns the first n entries.
func (s Static) Sample(n int) []string {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
