// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 9, c.Len())
	assert.True(t, c.Contains("What is the Allora Network?"))
	assert.False(t, c.Contains("What is the weather?"))
}

func TestNewCatalog_Dedupes(t *testing.T) {
	c := NewCatalog("a", " a ", "", "b", "   ", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, c.Questions())
}

func TestCatalog_QuestionsIsCopy(t *testing.T) {
	c := NewCatalog("a", "b")
	qs := c.Questions()
	qs[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, c.Questions())
}

// =============================================================================
// POOL TESTS
// =============================================================================

func TestPool_SampleDistinctFromCatalog(t *testing.T) {
	c := DefaultCatalog()
	pool := NewSeededPool(c, 7)

	for i := 0; i < 100; i++ {
		got := pool.Sample(DefaultCount)
		require.Len(t, got, DefaultCount)

		seen := map[string]bool{}
		for _, q := range got {
			assert.True(t, c.Contains(q), "sampled %q not in catalog", q)
			assert.False(t, seen[q], "duplicate %q in sample", q)
			seen[q] = true
		}
	}
}

func TestPool_SeedIsReproducible(t *testing.T) {
	a := NewSeededPool(DefaultCatalog(), 42)
	b := NewSeededPool(DefaultCatalog(), 42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Sample(3), b.Sample(3))
	}
}

func TestPool_SmallCatalog(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		n       int
		want    int
	}{
		{"fewer than requested", NewCatalog("a", "b"), 3, 2},
		{"empty catalog", NewCatalog(), 3, 0},
		{"zero requested", DefaultCatalog(), 0, 0},
		{"negative requested", DefaultCatalog(), -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewSeededPool(tc.catalog, 1).Sample(tc.n)
			assert.Len(t, got, tc.want)
			assert.NotNil(t, got)
		})
	}
}

func TestPool_SmallCatalogReturnsEveryEntry(t *testing.T) {
	got := NewSeededPool(NewCatalog("a", "b"), 3).Sample(3)
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestPool_RoughlyUniform(t *testing.T) {
	c := DefaultCatalog()
	pool := NewSeededPool(c, 2024)

	counts := map[string]int{}
	const rounds = 9000
	for i := 0; i < rounds; i++ {
		for _, q := range pool.Sample(DefaultCount) {
			counts[q]++
		}
	}

	// Each question is expected rounds*3/9 = 3000 times.
	for _, q := range c.Questions() {
		assert.InDelta(t, 3000, counts[q], 300, "question %q", q)
	}
}

func TestNewPool_NilSource(t *testing.T) {
	pool := NewPool(DefaultCatalog(), nil)
	assert.Len(t, pool.Sample(DefaultCount), DefaultCount)
}

func TestStatic(t *testing.T) {
	s := Static{"x", "y"}
	assert.Equal(t, []string{"x"}, s.Sample(1))
	assert.Equal(t, []string{"x", "y"}, s.Sample(5))
	assert.Equal(t, []string{}, s.Sample(0))

	var _ Sampler = s
	var _ Sampler = (*Pool)(nil)
}
