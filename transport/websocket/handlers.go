package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/paintgrid-backend/internal/engine"
)

var ErrInvalidDelta = errors.New("movement delta must be -1, 0 or 1")

func (that *Server) handleMove(client *Client, message *engine.Message) error {
	var payload engine.MovePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal move payload: %w", err)
	}

	if !isValidDelta(payload.DX) || !isValidDelta(payload.DY) {
		return ErrInvalidDelta
	}

	that.engine.Move(client.participantID, payload.DX, payload.DY)

	return nil
}

func (that *Server) handleRespawn(client *Client, _ *engine.Message) error {
	that.engine.Respawn(client.participantID)

	return nil
}

func (that *Server) sendError(client *Client, reason string) {
	message, err := engine.NewMessage(engine.ActionError, engine.ErrorPayload{Error: reason})
	if err != nil {
		that.logger.Error("failed to build error message", "error", err)
		return
	}

	client.Send(message)
}

func isValidDelta(delta int) bool {
	return delta >= -1 && delta <= 1
}
