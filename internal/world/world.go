// Package world holds the authoritative world state: the territory grid,
// the participant registry and the color palette. Nothing here locks;
// the sync engine is the single writer.
package world

// World geometry and movement constants. Fixed for the process lifetime.
const (
	WorldWidth  = 800
	WorldHeight = 600
	TileSize    = 10

	GridCols = WorldWidth / TileSize
	GridRows = WorldHeight / TileSize

	// MoveSpeed - world units a participant travels per unit of movement delta.
	MoveSpeed = 4
)
