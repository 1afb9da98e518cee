package orch

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Disconnect is terminal: it runs once per connection and always removes the
// registry entry.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if roomID, ok := o.Registry.RoomOf(id); ok {
		o.leave(id, roomID)
	}
	o.Registry.Remove(id)
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("disconnected")
}

// leave detaches id from roomID. Order matters: membership is removed before
// the host check so failover never elects the departing connection.
func (o *Orchestrator) leave(id domain.ConnID, roomID domain.RoomID) {
	defer o.Registry.ClearRoom(id)

	if _, wasWaiting := o.Rooms.RemoveWaiting(roomID, id); wasWaiting {
		o.pushWaiting(roomID)
	}
	if !o.Rooms.RemoveAdmitted(roomID, id) {
		return
	}

	survivors := o.Rooms.Admitted(roomID)
	o.broadcast(survivors, core.EventUserLeft, core.UserLeft{ID: id})

	host, _ := o.Rooms.Host(roomID)
	switch {
	case host == id && len(survivors) > 0:
		next := survivors[0]
		o.Rooms.SetHost(roomID, next)
		o.Registry.SetRole(next, domain.RoleHost)
		log.Info().Str("module", "orch").Str("room", string(roomID)).Str("host", string(next)).Msg("host re-elected")
		o.Transport.Send(next, core.EventHostChanged, nil)
		o.pushWaiting(roomID)
	case len(survivors) == 0:
		o.teardown(roomID)
	}

	o.pushParticipants(roomID)
}

// teardown removes the room and releases anyone still waiting in it.
func (o *Orchestrator) teardown(roomID domain.RoomID) {
	for _, w := range o.Rooms.Teardown(roomID) {
		o.Registry.ClearRoom(w.ID)
		o.Transport.Send(w.ID, core.EventDenied, nil)
	}
}
