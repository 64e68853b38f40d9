package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateColor(t *testing.T) {
	t.Run("Never returns a color already in use", func(t *testing.T) {
		// Given: all but one palette color in use
		rnd := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test randomness
		used := make(map[string]struct{})
		for _, color := range Palette[:len(Palette)-1] {
			used[color] = struct{}{}
		}

		// When: allocating a color
		color := AllocateColor(rnd, used)

		// Then: the single free color is returned
		assert.Equal(t, Palette[len(Palette)-1], color)
	})

	t.Run("Falls back to the full palette once exhausted", func(t *testing.T) {
		// Given: every palette color in use
		rnd := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test randomness
		used := make(map[string]struct{}, len(Palette))
		for _, color := range Palette {
			used[color] = struct{}{}
		}

		// When: allocating more colors anyway
		for i := 0; i < 20; i++ {
			color := AllocateColor(rnd, used)

			// Then: the result is still a palette color, reuse is silent
			assert.Contains(t, Palette, color)
		}
	})

	t.Run("Is deterministic under a seeded source", func(t *testing.T) {
		// Given: two identically seeded random sources
		first := rand.New(rand.NewSource(42))  //nolint:gosec // deterministic test randomness
		second := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic test randomness
		used := map[string]struct{}{Palette[0]: {}}

		// When: allocating from both
		for i := 0; i < 10; i++ {
			// Then: the sequences match
			assert.Equal(t, AllocateColor(first, used), AllocateColor(second, used))
		}
	})

	t.Run("Leaves the used set untouched", func(t *testing.T) {
		// Given: a used set with two colors
		rnd := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test randomness
		used := map[string]struct{}{Palette[0]: {}, Palette[1]: {}}

		// When: allocating
		AllocateColor(rnd, used)

		// Then: allocation had no side effect on the set
		require.Len(t, used, 2)
	})
}
