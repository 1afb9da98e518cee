package app

import (
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry holds the identity of every live connection.
// All operations are total: reads of absent ids yield zero values.
type Registry struct {
	mu           sync.RWMutex
	participants map[domain.ConnID]*domain.Participant
	now          func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		participants: make(map[domain.ConnID]*domain.Participant),
		now:          time.Now,
	}
}

// Register creates a blank identity. Registering a live id again resets it.
func (r *Registry) Register(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := domain.NewParticipant(id, r.now())
	r.participants[id] = &p
	log.Debug().Str("module", "app.registry").Str("conn", string(id)).Msg("registered connection")
}

// SetMeta overwrites the identity fields, creating the entry if needed.
func (r *Registry) SetMeta(id domain.ConnID, roomID domain.RoomID, name string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.getOrCreate(id)
	p.RoomID = roomID
	p.Name = name
	p.Role = role
	log.Debug().Str("module", "app.registry").Str("conn", string(id)).Str("room", string(roomID)).Str("role", role.String()).Msg("updated meta")
}

func (r *Registry) SetRole(id domain.ConnID, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.participants[id]; ok {
		p.Role = role
	}
}

// ClearRoom unbinds the connection from its room and resets its role.
func (r *Registry) ClearRoom(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.participants[id]; ok {
		p.RoomID = ""
		p.Role = domain.RoleGuest
	}
}

// Lookup returns a copy of the identity.
func (r *Registry) Lookup(id domain.ConnID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.participants[id]; ok {
		return *p, true
	}
	return domain.Participant{ID: id, Role: domain.RoleGuest}, false
}

// RoomOf returns the room id or false when the connection is in none.
func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	if !ok || p.RoomID == "" {
		return "", false
	}
	return p.RoomID, true
}

func (r *Registry) Remove(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, id)
	log.Debug().Str("module", "app.registry").Str("conn", string(id)).Msg("removed connection")
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

func (r *Registry) getOrCreate(id domain.ConnID) *domain.Participant {
	if p, ok := r.participants[id]; ok {
		return p
	}
	p := domain.NewParticipant(id, r.now())
	r.participants[id] = &p
	return &p
}
