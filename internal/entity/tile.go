package entity

// Tile - one cell of the territory grid. The zero value is an unowned tile.
// OwnerID is a weak reference: the owner may have disconnected already, the
// tile keeps its last owner and color either way.
type Tile struct {
	OwnerID string `json:"owner_id,omitempty"`
	Color   string `json:"color,omitempty"`
}

// IsEmpty - reports whether the tile has never been painted.
func (that Tile) IsEmpty() bool {
	return that.OwnerID == ""
}
