package app

import (
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_RecordsConnectTime(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	reg.now = func() time.Time { return at }

	// When a connection registers
	reg.Register("c1")

	// Then a blank guest identity exists
	p, ok := reg.Lookup("c1")
	req.True(ok)
	req.Equal(domain.ConnID("c1"), p.ID)
	req.Equal(domain.RoleGuest, p.Role)
	req.Empty(p.Name)
	req.Equal(at, p.ConnectedAt)
	req.Equal(1, reg.Count())

	_, inRoom := reg.RoomOf("c1")
	req.False(inRoom)
}

func TestRegistry_SetMeta_IsIdempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Register("c1")

	reg.SetMeta("c1", "r1", "Alice", domain.RoleHost)
	reg.SetMeta("c1", "r1", "Alice", domain.RoleHost)

	p, ok := reg.Lookup("c1")
	req.True(ok)
	req.Equal(domain.RoomID("r1"), p.RoomID)
	req.Equal("Alice", p.Name)
	req.Equal(domain.RoleHost, p.Role)
	req.Equal(1, reg.Count())

	room, ok := reg.RoomOf("c1")
	req.True(ok)
	req.Equal(domain.RoomID("r1"), room)
}

func TestRegistry_SetMeta_CreatesMissingEntry(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	reg.SetMeta("ghost", "r1", "Bob", domain.RoleGuest)

	p, ok := reg.Lookup("ghost")
	req.True(ok)
	req.Equal("Bob", p.Name)
	req.False(p.ConnectedAt.IsZero())
}

func TestRegistry_AbsentReadsNeverFail(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	p, ok := reg.Lookup("nobody")
	req.False(ok)
	req.Equal(domain.RoleGuest, p.Role)

	_, ok = reg.RoomOf("nobody")
	req.False(ok)

	// Mutations of absent ids are no-ops
	reg.SetRole("nobody", domain.RoleHost)
	reg.ClearRoom("nobody")
	reg.Remove("nobody")
	req.Zero(reg.Count())
}

func TestRegistry_ClearRoom_And_Remove(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Register("c1")
	reg.SetMeta("c1", "r1", "Alice", domain.RoleHost)

	reg.ClearRoom("c1")
	p, _ := reg.Lookup("c1")
	req.False(p.InRoom())
	req.Equal(domain.RoleGuest, p.Role)
	req.Equal("Alice", p.Name)

	reg.Remove("c1")
	_, ok := reg.Lookup("c1")
	req.False(ok)
}
