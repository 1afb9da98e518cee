package orch

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Signal forwards an opaque payload to another connection, tagged with the
// sender. Nothing is parsed or stored.
func (o *Orchestrator) Signal(from, to domain.ConnID, payload json.RawMessage) {
	if to == "" {
		return
	}
	o.Transport.Send(to, core.EventSignal, core.SignalRelay{FromID: from, Payload: payload})
}

// Chat appends to the room log and echoes to every admitted member,
// sender included.
func (o *Orchestrator) Chat(from domain.ConnID, payload, senderName string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, roomID, ok := o.admittedSender(from, core.EventChatMessage)
	if !ok {
		return
	}
	name := o.cleanName(senderName)
	if name == "" {
		name = p.DisplayName()
	}
	o.Rooms.AppendChat(roomID, domain.ChatEntry{SenderName: name, Payload: payload, SenderID: from})
	o.broadcast(o.Rooms.Admitted(roomID), core.EventChatMessage, core.ChatMessage{
		Payload:    payload,
		SenderName: name,
		SenderID:   from,
	})
}

// HandRaise is broadcast like chat but never logged or replayed.
func (o *Orchestrator) HandRaise(from domain.ConnID, raised bool, name string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, roomID, ok := o.admittedSender(from, core.EventHandRaise)
	if !ok {
		return
	}
	o.broadcast(o.Rooms.Admitted(roomID), core.EventHandRaise, core.HandRaise{
		ID:     from,
		Name:   o.ephemeralName(name, p),
		Raised: raised,
	})
}

func (o *Orchestrator) Reaction(from domain.ConnID, emoji, name string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, roomID, ok := o.admittedSender(from, core.EventReaction)
	if !ok {
		return
	}
	o.broadcast(o.Rooms.Admitted(roomID), core.EventReaction, core.Reaction{
		ID:    from,
		Name:  o.ephemeralName(name, p),
		Emoji: emoji,
	})
}

// admittedSender resolves the sender's room and checks admission.
func (o *Orchestrator) admittedSender(from domain.ConnID, event string) (domain.Participant, domain.RoomID, bool) {
	p, _ := o.Registry.Lookup(from)
	if !p.InRoom() || !o.Rooms.IsAdmitted(p.RoomID, from) {
		log.Debug().Str("module", "orch").Str("conn", string(from)).Str("event", event).Msg("dropped: sender not admitted")
		return p, "", false
	}
	return p, p.RoomID, true
}

func (o *Orchestrator) ephemeralName(raw string, p domain.Participant) string {
	if name := o.cleanName(raw); name != "" {
		return name
	}
	if p.Name != "" {
		return p.Name
	}
	return domain.DefaultGuestName
}
