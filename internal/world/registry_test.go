package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(seed int64) *Registry {
	return NewRegistry(rand.New(rand.NewSource(seed))) //nolint:gosec // deterministic test randomness
}

func TestRegistry_Create(t *testing.T) {
	t.Run("Spawns inside world bounds with a palette color", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry(1)

		// When: creating a participant
		participant := registry.Create("alice")

		// Then: it has an id, the given name, an in-bounds spawn and a palette color
		require.NotEmpty(t, participant.ID)
		assert.Equal(t, "alice", participant.Name)
		assert.GreaterOrEqual(t, participant.X, 0)
		assert.Less(t, participant.X, WorldWidth)
		assert.GreaterOrEqual(t, participant.Y, 0)
		assert.Less(t, participant.Y, WorldHeight)
		assert.Contains(t, Palette, participant.Color)
	})

	t.Run("Assigns unique ids and distinct colors up to the palette size", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry(2)

		// When: twelve participants connect
		ids := make(map[string]struct{})
		colors := make(map[string]struct{})
		for i := 0; i < len(Palette); i++ {
			participant := registry.Create("participant")
			ids[participant.ID] = struct{}{}
			colors[participant.Color] = struct{}{}
		}

		// Then: no id and no color repeats
		assert.Len(t, ids, len(Palette))
		assert.Len(t, colors, len(Palette))
	})

	t.Run("Reuses a color for the thirteenth participant", func(t *testing.T) {
		// Given: a registry with the whole palette taken
		registry := newTestRegistry(3)
		for i := 0; i < len(Palette); i++ {
			registry.Create("participant")
		}

		// When: one more participant connects
		participant := registry.Create("thirteenth")

		// Then: it still gets a palette color, necessarily shared
		assert.Contains(t, Palette, participant.Color)
		assert.Equal(t, len(Palette)+1, registry.Len())
	})
}

func TestRegistry_ApplyMovement(t *testing.T) {
	t.Run("Moves by delta times speed", func(t *testing.T) {
		// Given: a participant at a known position
		registry := newTestRegistry(4)
		participant := registry.Create("alice")
		participant.X, participant.Y = 100, 200

		// When: moving right and up-left
		moved, ok := registry.ApplyMovement(participant.ID, 1, 0, MoveSpeed)
		require.True(t, ok)
		assert.Equal(t, 104, moved.X)
		assert.Equal(t, 200, moved.Y)

		moved, ok = registry.ApplyMovement(participant.ID, -1, -1, MoveSpeed)

		// Then: both axes shift by speed units
		require.True(t, ok)
		assert.Equal(t, 100, moved.X)
		assert.Equal(t, 196, moved.Y)
	})

	t.Run("Clamps to the world edges", func(t *testing.T) {
		// Given: a participant in a corner
		registry := newTestRegistry(5)
		participant := registry.Create("alice")
		participant.X, participant.Y = 0, 0

		// When: pushing past the origin repeatedly
		for i := 0; i < 10; i++ {
			moved, ok := registry.ApplyMovement(participant.ID, -1, -1, MoveSpeed)
			require.True(t, ok)
			assert.Equal(t, 0, moved.X)
			assert.Equal(t, 0, moved.Y)
		}

		// When: pushing past the far corner repeatedly
		participant.X, participant.Y = WorldWidth-2, WorldHeight-2
		for i := 0; i < 10; i++ {
			moved, ok := registry.ApplyMovement(participant.ID, 1, 1, MoveSpeed)
			require.True(t, ok)

			// Then: the position never leaves the world
			assert.Less(t, moved.X, WorldWidth)
			assert.Less(t, moved.Y, WorldHeight)
		}

		// Then: the participant sits exactly on the far edge
		moved, ok := registry.Get(participant.ID)
		require.True(t, ok)
		assert.Equal(t, WorldWidth-1, moved.X)
		assert.Equal(t, WorldHeight-1, moved.Y)
	})

	t.Run("Silently ignores a missing participant", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry(6)

		// When: moving an id that was never created
		moved, ok := registry.ApplyMovement("ghost", 1, 1, MoveSpeed)

		// Then: nothing happens
		assert.False(t, ok)
		assert.Nil(t, moved)
	})
}

func TestRegistry_Respawn(t *testing.T) {
	t.Run("Assigns a fresh in-bounds position", func(t *testing.T) {
		// Given: a participant
		registry := newTestRegistry(7)
		participant := registry.Create("alice")

		// When: respawning many times
		for i := 0; i < 50; i++ {
			respawned, ok := registry.Respawn(participant.ID)
			require.True(t, ok)

			// Then: the position stays in bounds
			assert.GreaterOrEqual(t, respawned.X, 0)
			assert.Less(t, respawned.X, WorldWidth)
			assert.GreaterOrEqual(t, respawned.Y, 0)
			assert.Less(t, respawned.Y, WorldHeight)
		}
	})

	t.Run("Silently ignores a missing participant", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry(8)

		// When: respawning an unknown id
		respawned, ok := registry.Respawn("ghost")

		// Then: nothing happens
		assert.False(t, ok)
		assert.Nil(t, respawned)
	})
}

func TestRegistry_Remove(t *testing.T) {
	// Given: a registry with one participant
	registry := newTestRegistry(9)
	participant := registry.Create("alice")

	// When: removing it twice
	first := registry.Remove(participant.ID)
	second := registry.Remove(participant.ID)

	// Then: only the first removal reports a change
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 0, registry.Len())

	_, ok := registry.Get(participant.ID)
	assert.False(t, ok)
}

func TestRegistry_Snapshot(t *testing.T) {
	// Given: a registry with two participants
	registry := newTestRegistry(10)
	alice := registry.Create("alice")
	bob := registry.Create("bob")

	// When: taking a snapshot and mutating it
	snapshot := registry.Snapshot()
	require.Len(t, snapshot, 2)
	snapshot[alice.ID].X = -1000

	// Then: the registry keeps its own state
	stored, ok := registry.Get(alice.ID)
	require.True(t, ok)
	assert.GreaterOrEqual(t, stored.X, 0)
	assert.Contains(t, snapshot, bob.ID)
}
