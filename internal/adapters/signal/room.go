package signal

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

type joinPayload struct {
	RoomID string `json:"roomId" validate:"required,max=128"`
	Name   string `json:"name"`
}

type targetPayload struct {
	RoomID   string `json:"roomId" validate:"required,max=128"`
	TargetID string `json:"targetId" validate:"required"`
}

func (ctl *SignalWSController) handleJoin(id domain.ConnID, raw json.RawMessage) {
	var p joinPayload
	if !ctl.decode(id, core.EventJoinRoom, raw, &p) {
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.RoomID).Msg("join")
	ctl.Orch.Join(id, domain.RoomID(p.RoomID), p.Name)
}

func (ctl *SignalWSController) handleAdmit(id domain.ConnID, raw json.RawMessage) {
	var p targetPayload
	if !ctl.decode(id, core.EventAdmitUser, raw, &p) {
		return
	}
	ctl.Orch.Admit(id, domain.RoomID(p.RoomID), domain.ConnID(p.TargetID))
}

func (ctl *SignalWSController) handleDeny(id domain.ConnID, raw json.RawMessage) {
	var p targetPayload
	if !ctl.decode(id, core.EventDenyUser, raw, &p) {
		return
	}
	ctl.Orch.Deny(id, domain.RoomID(p.RoomID), domain.ConnID(p.TargetID))
}
