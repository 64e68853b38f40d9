package entity

// Participant - one connected client in the world.
// Created on connect, mutated only by move/respawn events for its id,
// removed on disconnect. The registry is the only owner of these values.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}
