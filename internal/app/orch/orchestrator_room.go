package orch

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join makes the caller host of a fresh room or queues it for approval.
// A connection already bound to a room leaves it first.
func (o *Orchestrator) Join(id domain.ConnID, roomID domain.RoomID, name string) {
	if roomID == "" {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Msg("join ignored: empty room")
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if prev, ok := o.Registry.RoomOf(id); ok && prev != roomID {
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("from_room", string(prev)).Msg("leaving previous room before join")
		o.leave(id, prev)
	}
	if o.Rooms.IsAdmitted(roomID, id) {
		o.resendApproval(id, roomID)
		return
	}
	name = o.cleanName(name)

	if _, hasHost := o.Rooms.Host(roomID); !hasHost {
		o.Rooms.Ensure(roomID)
		o.Registry.SetMeta(id, roomID, name, domain.RoleHost)
		o.Rooms.AddAdmitted(roomID, id)
		o.Rooms.SetHost(roomID, id)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("joined as host")

		o.Transport.Send(id, core.EventJoinApproved, core.JoinApproved{
			Role:         domain.RoleHost,
			Participants: o.participantsView(roomID),
			Waiting:      o.Rooms.Waiting(roomID),
		})
		o.replayChat(id, roomID)
		o.pushParticipants(roomID)
		o.pushWaiting(roomID)
		return
	}

	o.Registry.SetMeta(id, roomID, name, domain.RoleGuest)
	o.Rooms.AddWaiting(roomID, domain.NewWaitingEntry(id, name, o.clock()))
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("queued in waiting room")

	o.Transport.Send(id, core.EventWaiting, nil)
	o.pushWaiting(roomID)
}

// Admit moves target from the waiting list into the room. Only the current
// host may admit; anything else is dropped silently.
func (o *Orchestrator) Admit(id domain.ConnID, roomID domain.RoomID, target domain.ConnID) {
	if roomID == "" || target == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.isHost(id, roomID) {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("admit dropped: not host")
		return
	}
	entry, ok := o.Rooms.RemoveWaiting(roomID, target)
	if !ok {
		log.Debug().Str("module", "orch").Str("room", string(roomID)).Str("target", string(target)).Msg("admit ignored: target not waiting")
		return
	}
	o.Rooms.AddAdmitted(roomID, target)

	name := entry.Name
	if p, found := o.Registry.Lookup(target); found {
		name = p.Name
	}
	o.Registry.SetMeta(target, roomID, name, domain.RoleGuest)
	log.Info().Str("module", "orch").Str("room", string(roomID)).Str("target", string(target)).Msg("admitted")

	participants := o.participantsView(roomID)
	o.Transport.Send(target, core.EventJoinApproved, core.JoinApproved{
		Role:         domain.RoleGuest,
		Participants: participants,
		Waiting:      o.Rooms.Waiting(roomID),
	})
	o.replayChat(target, roomID)
	o.broadcast(o.Rooms.Admitted(roomID), core.EventUserJoined, core.UserJoined{
		TargetID:     target,
		Participants: participants,
	})
	o.pushWaiting(roomID)
	o.pushParticipants(roomID)
}

// Deny removes target from the waiting list and tells it so. Closing the
// channel is left to the transport or the client's reaction to "denied".
func (o *Orchestrator) Deny(id domain.ConnID, roomID domain.RoomID, target domain.ConnID) {
	if roomID == "" || target == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.isHost(id, roomID) {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("deny dropped: not host")
		return
	}
	if _, ok := o.Rooms.RemoveWaiting(roomID, target); !ok {
		return
	}
	o.Registry.ClearRoom(target)
	log.Info().Str("module", "orch").Str("room", string(roomID)).Str("target", string(target)).Msg("denied")

	o.Transport.Send(target, core.EventDenied, nil)
	o.pushWaiting(roomID)
}

// resendApproval answers a repeated join from an admitted member with its
// current state. Role and membership stay untouched.
func (o *Orchestrator) resendApproval(id domain.ConnID, roomID domain.RoomID) {
	p, _ := o.Registry.Lookup(id)
	log.Debug().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("duplicate join: resending approval")
	o.Transport.Send(id, core.EventJoinApproved, core.JoinApproved{
		Role:         p.Role,
		Participants: o.participantsView(roomID),
		Waiting:      o.Rooms.Waiting(roomID),
	})
	o.replayChat(id, roomID)
}

func (o *Orchestrator) isHost(id domain.ConnID, roomID domain.RoomID) bool {
	host, ok := o.Rooms.Host(roomID)
	return ok && host == id
}
