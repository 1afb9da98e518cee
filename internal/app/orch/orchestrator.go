// Package orch coordinates rooms: admission, fan-out, relay and departure.
//
// Every state transition runs under a single mutex, so two events never
// interleave their read-modify-write of a room. Deliveries are handed to the
// Transport while the lock is held; the Transport contract forbids blocking
// and synchronous re-entry, which keeps per-recipient ordering intact.
package orch

import (
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry  *app.Registry
	Rooms     *app.RoomStore
	Transport core.Transport

	// MaxNameLen caps display names in runes; zero means domain.MaxNameLen.
	MaxNameLen int

	mu  sync.Mutex
	now func() time.Time
}

func New(reg *app.Registry, rooms *app.RoomStore, transport core.Transport) *Orchestrator {
	return &Orchestrator{
		Registry:  reg,
		Rooms:     rooms,
		Transport: transport,
		now:       time.Now,
	}
}

// Connect registers a freshly opened channel.
func (o *Orchestrator) Connect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.Register(id)
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("connected")
}

func (o *Orchestrator) RoomList() []core.RoomInfo {
	return o.Rooms.List()
}

func (o *Orchestrator) RoomInfo(id domain.RoomID) (core.RoomInfo, bool) {
	return o.Rooms.Info(id)
}

func (o *Orchestrator) clock() time.Time {
	if o.now == nil {
		return time.Now()
	}
	return o.now()
}

func (o *Orchestrator) cleanName(raw string) string {
	return domain.CleanName(raw, o.MaxNameLen)
}
