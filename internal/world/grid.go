package world

import "github.com/rocketscienceinc/paintgrid-backend/internal/entity"

// Grid - the tile ownership table. Tiles start empty and once painted only
// ever change owner and color; they never revert to empty.
type Grid struct {
	tiles [GridRows][GridCols]entity.Tile
}

func NewGrid() *Grid {
	return &Grid{}
}

// Reset - reinitializes every tile to empty.
func (that *Grid) Reset() {
	that.tiles = [GridRows][GridCols]entity.Tile{}
}

// Paint - claims the tile under the given world position for ownerID.
// Returns the tile index and true on success. A position outside the world
// mutates nothing and returns false; the check happens in position space
// before dividing, since truncating division folds (-TileSize, 0) onto
// index zero. Positions are clamped upstream, so a false here means an
// invariant was broken elsewhere, not a client error.
func (that *Grid) Paint(ownerID string, x, y int, color string) (row, col int, ok bool) {
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		return 0, 0, false
	}

	row = y / TileSize
	col = x / TileSize

	that.tiles[row][col] = entity.Tile{OwnerID: ownerID, Color: color}

	return row, col, true
}

// TileAt - returns a copy of the tile at the given index.
func (that *Grid) TileAt(row, col int) (entity.Tile, bool) {
	if row < 0 || row >= GridRows || col < 0 || col >= GridCols {
		return entity.Tile{}, false
	}

	return that.tiles[row][col], true
}

// Tiles - returns a row-major deep copy of the grid for snapshots.
func (that *Grid) Tiles() [][]entity.Tile {
	tiles := make([][]entity.Tile, GridRows)
	for row := range that.tiles {
		tiles[row] = make([]entity.Tile, GridCols)
		copy(tiles[row], that.tiles[row][:])
	}

	return tiles
}
