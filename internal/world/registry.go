package world

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
)

// Registry - the set of connected participants. The sync engine is the only
// writer, one event at a time, so no locking happens here; every operation
// is atomic relative to the others by construction.
type Registry struct {
	rnd          *rand.Rand
	participants map[string]*entity.Participant
}

func NewRegistry(rnd *rand.Rand) *Registry {
	return &Registry{
		rnd:          rnd,
		participants: make(map[string]*entity.Participant),
	}
}

// Create - registers a new participant with a fresh id, a color distinct
// from the ones in use (while the palette lasts) and a random in-bounds
// spawn position.
func (that *Registry) Create(name string) *entity.Participant {
	participant := &entity.Participant{
		ID:    uuid.NewString(),
		Name:  name,
		X:     that.rnd.Intn(WorldWidth),
		Y:     that.rnd.Intn(WorldHeight),
		Color: AllocateColor(that.rnd, that.usedColors()),
	}

	that.participants[participant.ID] = participant

	return participant
}

// Get - looks a participant up by id.
func (that *Registry) Get(id string) (*entity.Participant, bool) {
	participant, ok := that.participants[id]
	return participant, ok
}

// ApplyMovement - shifts the participant by dx*speed, dy*speed, clamped to
// world bounds. A missing id is a silent no-op: a disconnect may race an
// in-flight move event.
func (that *Registry) ApplyMovement(id string, dx, dy, speed int) (*entity.Participant, bool) {
	participant, ok := that.participants[id]
	if !ok {
		return nil, false
	}

	participant.X = clamp(participant.X+dx*speed, 0, WorldWidth-1)
	participant.Y = clamp(participant.Y+dy*speed, 0, WorldHeight-1)

	return participant, true
}

// Respawn - moves the participant to a fresh random in-bounds position.
// A missing id is a silent no-op.
func (that *Registry) Respawn(id string) (*entity.Participant, bool) {
	participant, ok := that.participants[id]
	if !ok {
		return nil, false
	}

	participant.X = that.rnd.Intn(WorldWidth)
	participant.Y = that.rnd.Intn(WorldHeight)

	return participant, true
}

// Remove - deletes the participant. Idempotent; reports whether the id was
// present so callers broadcast the departure exactly once.
func (that *Registry) Remove(id string) bool {
	if _, ok := that.participants[id]; !ok {
		return false
	}

	delete(that.participants, id)

	return true
}

// Snapshot - returns a full copy of the registry keyed by id, safe to hand
// to transports and marshal outside the engine goroutine.
func (that *Registry) Snapshot() map[string]*entity.Participant {
	snapshot := make(map[string]*entity.Participant, len(that.participants))
	for id, participant := range that.participants {
		copied := *participant
		snapshot[id] = &copied
	}

	return snapshot
}

// Len - number of connected participants.
func (that *Registry) Len() int {
	return len(that.participants)
}

func (that *Registry) usedColors() map[string]struct{} {
	used := make(map[string]struct{}, len(that.participants))
	for _, participant := range that.participants {
		used[participant.Color] = struct{}{}
	}

	return used
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}

	return value
}
