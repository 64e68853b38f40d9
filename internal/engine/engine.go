// Package engine implements the synchronization engine: the single writer of
// the world state. It consumes lifecycle and movement events one at a time
// and broadcasts the resulting deltas to every connected client, so state
// mutation always completes before the matching broadcast leaves the engine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
	"github.com/rocketscienceinc/paintgrid-backend/internal/world"
)

var ErrEngineClosed = errors.New("sync engine is closed")

const eventBufferSize = 256

// Client - the engine's handle on one connected transport client. Send must
// never block; the transport buffers outbound messages and deals with slow
// consumers itself.
type Client interface {
	Send(message []byte)
}

type event interface{}

type connectEvent struct {
	name   string
	client Client
	reply  chan *entity.Participant
}

type moveEvent struct {
	id string
	dx int
	dy int
}

type respawnEvent struct {
	id string
}

type disconnectEvent struct {
	id string
}

// Engine - owns the participant registry, the territory grid and the set of
// connected clients. All three are touched only from the Run goroutine.
type Engine struct {
	logger *slog.Logger

	registry *world.Registry
	grid     *world.Grid

	clients map[string]Client
	events  chan event
	done    chan struct{}
}

func New(logger *slog.Logger, registry *world.Registry, grid *world.Grid) *Engine {
	return &Engine{
		logger:   logger.With("component", "engine"),
		registry: registry,
		grid:     grid,
		clients:  make(map[string]Client),
		events:   make(chan event, eventBufferSize),
		done:     make(chan struct{}),
	}
}

// Run - processes events one at a time until ctx is canceled. Events arrive
// in channel order; each connection feeds the channel from a single reader
// goroutine, so per-connection FIFO holds.
func (that *Engine) Run(ctx context.Context) error {
	defer close(that.done)

	that.logger.Info("sync engine started")

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("sync engine stopped")
			return nil
		case ev := <-that.events:
			that.handle(ev)
		}
	}
}

// Connect - registers a participant for a validated connection and returns a
// copy of it once the join is fully processed: spawn tile painted, init sent
// to the new client, join broadcast to everyone else.
func (that *Engine) Connect(ctx context.Context, name string, client Client) (*entity.Participant, error) {
	reply := make(chan *entity.Participant, 1)

	select {
	case that.events <- connectEvent{name: name, client: client, reply: reply}:
	case <-that.done:
		return nil, ErrEngineClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to enqueue connect: %w", ctx.Err())
	}

	select {
	case participant := <-reply:
		return participant, nil
	case <-that.done:
		return nil, ErrEngineClosed
	}
}

// Move - queues a movement event. Fire and forget: a participant that
// disconnected while the event sat in the queue is silently skipped.
func (that *Engine) Move(id string, dx, dy int) {
	that.enqueue(moveEvent{id: id, dx: dx, dy: dy})
}

// Respawn - queues a teleport to a fresh random position.
func (that *Engine) Respawn(id string) {
	that.enqueue(respawnEvent{id: id})
}

// Disconnect - queues the participant's departure. Idempotent.
func (that *Engine) Disconnect(id string) {
	that.enqueue(disconnectEvent{id: id})
}

func (that *Engine) enqueue(ev event) {
	select {
	case that.events <- ev:
	case <-that.done:
	}
}

func (that *Engine) handle(ev event) {
	switch ev := ev.(type) {
	case connectEvent:
		that.handleConnect(ev)
	case moveEvent:
		that.handleMove(ev)
	case respawnEvent:
		that.handleRespawn(ev)
	case disconnectEvent:
		that.handleDisconnect(ev)
	}
}

func (that *Engine) handleConnect(ev connectEvent) {
	log := that.logger.With("method", "handleConnect")

	participant := that.registry.Create(ev.name)

	// the spawn tile is claimed immediately; it reaches existing clients via
	// later init snapshots, not as a tile:painted broadcast
	that.grid.Paint(participant.ID, participant.X, participant.Y, participant.Color)

	that.clients[participant.ID] = ev.client

	initMessage, err := NewMessage(ActionInit, InitPayload{
		ID:           participant.ID,
		Participants: that.registry.Snapshot(),
		Tiles:        that.grid.Tiles(),
	})
	if err != nil {
		log.Error("failed to build init message", "error", err)
	} else {
		ev.client.Send(initMessage)
	}

	joinedMessage, err := NewMessage(ActionParticipantJoined, ParticipantJoinedPayload{Participant: participant})
	if err != nil {
		log.Error("failed to build joined message", "error", err)
	} else {
		that.broadcastExcept(participant.ID, joinedMessage)
	}

	copied := *participant
	ev.reply <- &copied

	log.Info("participant connected", "participant_id", participant.ID, "name", participant.Name)
}

func (that *Engine) handleMove(ev moveEvent) {
	participant, ok := that.registry.ApplyMovement(ev.id, ev.dx, ev.dy, world.MoveSpeed)
	if !ok {
		return
	}

	row, col, painted := that.grid.Paint(participant.ID, participant.X, participant.Y, participant.Color)
	that.broadcastMovement(participant, row, col, painted)
}

func (that *Engine) handleRespawn(ev respawnEvent) {
	participant, ok := that.registry.Respawn(ev.id)
	if !ok {
		return
	}

	row, col, painted := that.grid.Paint(participant.ID, participant.X, participant.Y, participant.Color)
	that.broadcastMovement(participant, row, col, painted)
}

func (that *Engine) handleDisconnect(ev disconnectEvent) {
	log := that.logger.With("method", "handleDisconnect")

	if !that.registry.Remove(ev.id) {
		return
	}

	delete(that.clients, ev.id)

	// tiles owned by this id stay as they are: territory outlives the connection
	leftMessage, err := NewMessage(ActionParticipantLeft, ParticipantLeftPayload{ID: ev.id})
	if err != nil {
		log.Error("failed to build left message", "error", err)
		return
	}

	that.broadcast(leftMessage)

	log.Info("participant disconnected", "participant_id", ev.id)
}

// broadcastMovement - fans out the movement delta, then the tile claim if
// painting succeeded. The registry and grid are already mutated here.
func (that *Engine) broadcastMovement(participant *entity.Participant, row, col int, painted bool) {
	log := that.logger.With("method", "broadcastMovement")

	movedMessage, err := NewMessage(ActionParticipantMoved, ParticipantMovedPayload{
		ID: participant.ID,
		X:  participant.X,
		Y:  participant.Y,
	})
	if err != nil {
		log.Error("failed to build moved message", "error", err)
		return
	}

	that.broadcast(movedMessage)

	if !painted {
		return
	}

	tileMessage, err := NewMessage(ActionTilePainted, TilePaintedPayload{
		Row:     row,
		Col:     col,
		OwnerID: participant.ID,
		Color:   participant.Color,
	})
	if err != nil {
		log.Error("failed to build tile message", "error", err)
		return
	}

	that.broadcast(tileMessage)
}

func (that *Engine) broadcast(message []byte) {
	for _, client := range that.clients {
		client.Send(message)
	}
}

func (that *Engine) broadcastExcept(id string, message []byte) {
	for clientID, client := range that.clients {
		if clientID == id {
			continue
		}

		client.Send(message)
	}
}
