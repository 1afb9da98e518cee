package app

import (
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRoomStore_Ensure_IsIdempotent(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()

	s.Ensure("r1")
	s.AppendChat("r1", domain.ChatEntry{SenderName: "Alice", Payload: "hi", SenderID: "a"})
	s.Ensure("r1")

	req.True(s.Exists("r1"))
	req.Len(s.Chat("r1"), 1)
	req.Empty(s.Admitted("r1"))
	req.NotNil(s.Waiting("r1"))
}

func TestRoomStore_AddAdmitted_NoDuplicates(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()

	req.True(s.AddAdmitted("r1", "a"))
	req.True(s.AddAdmitted("r1", "b"))
	req.False(s.AddAdmitted("r1", "a"))

	req.Equal([]domain.ConnID{"a", "b"}, s.Admitted("r1"))
	req.True(s.IsAdmitted("r1", "b"))
	req.False(s.IsAdmitted("r2", "b"))

	req.True(s.RemoveAdmitted("r1", "a"))
	req.False(s.RemoveAdmitted("r1", "a"))
	req.False(s.RemoveAdmitted("unknown", "a"))
	req.Equal([]domain.ConnID{"b"}, s.Admitted("r1"))
}

func TestRoomStore_AddWaiting_ReplacesEntry(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()
	t0 := time.UnixMilli(1000)
	t1 := time.UnixMilli(2000)

	s.AddWaiting("r1", domain.NewWaitingEntry("b", "Bob", t0))
	s.AddWaiting("r1", domain.NewWaitingEntry("c", "Carol", t0))
	// Re-adding b moves it to the back with the new timestamp
	s.AddWaiting("r1", domain.NewWaitingEntry("b", "Bobby", t1))

	waiting := s.Waiting("r1")
	req.Len(waiting, 2)
	req.Equal(domain.ConnID("c"), waiting[0].ID)
	req.Equal(domain.ConnID("b"), waiting[1].ID)
	req.Equal("Bobby", waiting[1].Name)
	req.Equal(int64(2000), waiting[1].JoinedAt)

	e, ok := s.RemoveWaiting("r1", "c")
	req.True(ok)
	req.Equal("Carol", e.Name)
	_, ok = s.RemoveWaiting("r1", "c")
	req.False(ok)
	_, ok = s.RemoveWaiting("nope", "b")
	req.False(ok)
}

func TestRoomStore_ReadsAreCopies(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()
	s.AddAdmitted("r1", "a")

	admitted := s.Admitted("r1")
	admitted[0] = "mutated"

	req.Equal([]domain.ConnID{"a"}, s.Admitted("r1"))
}

func TestRoomStore_Host(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()

	_, ok := s.Host("r1")
	req.False(ok)

	s.AddAdmitted("r1", "a")
	s.SetHost("r1", "a")
	host, ok := s.Host("r1")
	req.True(ok)
	req.Equal(domain.ConnID("a"), host)
}

func TestRoomStore_Teardown_RemovesEverything(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()
	s.AddAdmitted("r1", "a")
	s.SetHost("r1", "a")
	s.AddWaiting("r1", domain.NewWaitingEntry("b", "Bob", time.Now()))
	s.AppendChat("r1", domain.ChatEntry{Payload: "hi"})

	stranded := s.Teardown("r1")

	req.Len(stranded, 1)
	req.Equal(domain.ConnID("b"), stranded[0].ID)
	req.False(s.Exists("r1"))
	req.Empty(s.Admitted("r1"))
	req.Empty(s.Waiting("r1"))
	req.Empty(s.Chat("r1"))
	_, ok := s.Host("r1")
	req.False(ok)
	req.Nil(s.Teardown("r1"))
}

func TestRoomStore_ListAndInfo(t *testing.T) {
	req := require.New(t)
	s := NewRoomStore()
	s.AddAdmitted("zeta", "a")
	s.SetHost("zeta", "a")
	s.AddAdmitted("alpha", "b")
	s.AddWaiting("alpha", domain.NewWaitingEntry("c", "", time.Now()))

	list := s.List()
	req.Len(list, 2)
	req.Equal(domain.RoomID("alpha"), list[0].ID)
	req.Equal(1, list[0].Waiting)
	req.False(list[0].HasHost)
	req.Equal(domain.RoomID("zeta"), list[1].ID)
	req.True(list[1].HasHost)

	info, ok := s.Info("zeta")
	req.True(ok)
	req.Equal(1, info.Participants)
	_, ok = s.Info("missing")
	req.False(ok)
}
