// Package domain contains entities without transport logic, just meta-data
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLen = 36

	DefaultGuestName = "Guest"
	guestPrefix      = "Guest-"
	shortIDLen       = 5
)

// ConnID is assigned by the transport, one per duplex channel.
type ConnID string

// Short returns the first five characters of the id.
func (id ConnID) Short() string {
	s := string(id)
	if len(s) > shortIDLen {
		return s[:shortIDLen]
	}
	return s
}

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

func (r Role) String() string {
	if r == "" {
		return string(RoleGuest)
	}
	return string(r)
}

// Participant is the identity of one live connection.
// RoomID is empty until the connection joins a room.
type Participant struct {
	ID          ConnID
	Name        string
	Role        Role
	RoomID      RoomID
	ConnectedAt time.Time
}

func NewParticipant(id ConnID, now time.Time) Participant {
	return Participant{ID: id, Role: RoleGuest, ConnectedAt: now}
}

// InRoom reports whether the connection is bound to a room.
func (p Participant) InRoom() bool { return p.RoomID != "" }

// DisplayName falls back to "Guest-<short id>" for unnamed participants.
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return guestPrefix + p.ID.Short()
}

// CleanName trims an untrusted display name and caps it at max runes.
// A non-positive max means MaxNameLen.
func CleanName(raw string, max int) string {
	if max <= 0 {
		max = MaxNameLen
	}
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	return strings.TrimSpace(string([]rune(name)[:max]))
}
