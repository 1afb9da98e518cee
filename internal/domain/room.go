package domain

import "time"

// RoomID is an opaque key chosen by the caller.
type RoomID string

// WaitingEntry is a connection queued for host approval.
type WaitingEntry struct {
	ID       ConnID `json:"id"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

func NewWaitingEntry(id ConnID, name string, at time.Time) WaitingEntry {
	if name == "" {
		name = DefaultGuestName
	}
	return WaitingEntry{ID: id, Name: name, JoinedAt: at.UnixMilli()}
}

// ChatEntry is one line of a room's chat log.
type ChatEntry struct {
	SenderName string
	Payload    string
	SenderID   ConnID
}
