package engine

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
)

// Actions the engine broadcasts to clients.
const (
	ActionInit              = "init"
	ActionParticipantJoined = "participant:joined"
	ActionParticipantMoved  = "participant:moved"
	ActionTilePainted       = "tile:painted"
	ActionParticipantLeft   = "participant:left"
)

// Actions clients send to the engine. Connect and disconnect have no action
// of their own: they are the websocket handshake and close.
const (
	ActionMove    = "move"
	ActionRespawn = "respawn"
	ActionError   = "error"
)

// Message - the wire envelope in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// InitPayload - the full world snapshot a client receives exactly once,
// right after its connect is processed. Every later delta applies on top.
type InitPayload struct {
	ID           string                         `json:"id"`
	Participants map[string]*entity.Participant `json:"participants"`
	Tiles        [][]entity.Tile                `json:"tiles"`
}

type ParticipantJoinedPayload struct {
	Participant *entity.Participant `json:"participant"`
}

type ParticipantMovedPayload struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type TilePaintedPayload struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	OwnerID string `json:"owner_id"`
	Color   string `json:"color"`
}

type ParticipantLeftPayload struct {
	ID string `json:"id"`
}

// MovePayload - inbound movement deltas, each axis in {-1, 0, 1}.
type MovePayload struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage - marshals an action and payload into one wire-ready envelope,
// so broadcasts serialize once and fan the same bytes out to every client.
func NewMessage(action string, payload interface{}) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
