package orch

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
)

// participantsView is recomputed on every call; it is never cached.
func (o *Orchestrator) participantsView(roomID domain.RoomID) []core.ParticipantView {
	admitted := o.Rooms.Admitted(roomID)
	out := make([]core.ParticipantView, 0, len(admitted))
	for _, id := range admitted {
		p, _ := o.Registry.Lookup(id)
		out = append(out, core.ParticipantView{
			ID:   id,
			Name: p.DisplayName(),
			Role: p.Role,
		})
	}
	return out
}

// pushParticipants sends the same view to every admitted member.
func (o *Orchestrator) pushParticipants(roomID domain.RoomID) {
	o.broadcast(o.Rooms.Admitted(roomID), core.EventParticipantsUpdate, o.participantsView(roomID))
}

// pushWaiting sends the raw waiting list to the host only.
func (o *Orchestrator) pushWaiting(roomID domain.RoomID) {
	host, ok := o.Rooms.Host(roomID)
	if !ok {
		return
	}
	o.Transport.Send(host, core.EventWaitingUpdate, o.Rooms.Waiting(roomID))
}

func (o *Orchestrator) replayChat(to domain.ConnID, roomID domain.RoomID) {
	for _, m := range o.Rooms.Chat(roomID) {
		o.Transport.Send(to, core.EventChatMessage, core.ChatMessage{
			Payload:    m.Payload,
			SenderName: m.SenderName,
			SenderID:   m.SenderID,
		})
	}
}

func (o *Orchestrator) broadcast(to []domain.ConnID, event string, payload any) {
	if len(to) == 0 {
		return
	}
	o.Transport.Broadcast(to, event, payload)
}
