package signal

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
)

type relayPayload struct {
	ToID    string          `json:"toId" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

type chatPayload struct {
	Payload    string `json:"payload" validate:"required,max=4096"`
	SenderName string `json:"senderName"`
}

type handRaisePayload struct {
	Raised bool   `json:"raised"`
	Name   string `json:"name"`
}

type reactionPayload struct {
	Emoji string `json:"emoji" validate:"required,max=32"`
	Name  string `json:"name"`
}

func (ctl *SignalWSController) handleRelay(id domain.ConnID, raw json.RawMessage) {
	var p relayPayload
	if !ctl.decode(id, core.EventSignal, raw, &p) {
		return
	}
	ctl.Orch.Signal(id, domain.ConnID(p.ToID), p.Payload)
}

func (ctl *SignalWSController) handleChat(id domain.ConnID, raw json.RawMessage) {
	var p chatPayload
	if !ctl.decode(id, core.EventChatMessage, raw, &p) {
		return
	}
	ctl.Orch.Chat(id, p.Payload, p.SenderName)
}

func (ctl *SignalWSController) handleHandRaise(id domain.ConnID, raw json.RawMessage) {
	var p handRaisePayload
	if !ctl.decode(id, core.EventHandRaise, raw, &p) {
		return
	}
	ctl.Orch.HandRaise(id, p.Raised, p.Name)
}

func (ctl *SignalWSController) handleReaction(id domain.ConnID, raw json.RawMessage) {
	var p reactionPayload
	if !ctl.decode(id, core.EventReaction, raw, &p) {
		return
	}
	ctl.Orch.Reaction(id, p.Emoji, p.Name)
}
