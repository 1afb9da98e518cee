package core

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/domain"
)

// Inbound event names.
const (
	EventJoinRoom  = "join-room"
	EventAdmitUser = "admit-user"
	EventDenyUser  = "deny-user"
	EventPing      = "ping"
)

// Outbound event names. Signal, chat, hand-raise and reaction share their
// inbound name.
const (
	EventJoinApproved       = "join-approved"
	EventWaiting            = "waiting"
	EventWaitingUpdate      = "waiting-update"
	EventParticipantsUpdate = "participants-update"
	EventUserJoined         = "user-joined"
	EventUserLeft           = "user-left"
	EventHostChanged        = "host-changed"
	EventDenied             = "denied"
	EventChatMessage        = "chat-message"
	EventHandRaise          = "hand-raise"
	EventReaction           = "reaction"
	EventSignal             = "signal"
	EventPong               = "pong"
)

// ParticipantView is one admitted member as seen by clients.
type ParticipantView struct {
	ID   domain.ConnID `json:"id"`
	Name string        `json:"name"`
	Role domain.Role   `json:"role"`
}

type JoinApproved struct {
	Role         domain.Role           `json:"role"`
	Participants []ParticipantView     `json:"participants"`
	Waiting      []domain.WaitingEntry `json:"waiting"`
}

type UserJoined struct {
	TargetID     domain.ConnID     `json:"targetId"`
	Participants []ParticipantView `json:"participants"`
}

type UserLeft struct {
	ID domain.ConnID `json:"id"`
}

type ChatMessage struct {
	Payload    string        `json:"payload"`
	SenderName string        `json:"senderName"`
	SenderID   domain.ConnID `json:"senderId"`
}

type HandRaise struct {
	ID     domain.ConnID `json:"id"`
	Name   string        `json:"name"`
	Raised bool          `json:"raised"`
}

type Reaction struct {
	ID    domain.ConnID `json:"id"`
	Name  string        `json:"name"`
	Emoji string        `json:"emoji"`
}

// SignalRelay carries an opaque media-layer blob; the core never parses it.
type SignalRelay struct {
	FromID  domain.ConnID   `json:"fromId"`
	Payload json.RawMessage `json:"payload"`
}
