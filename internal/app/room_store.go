package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// roomState is everything the store keeps per room key.
// admitted and waiting are ordered sets; chat is append-only.
type roomState struct {
	admitted []domain.ConnID
	waiting  []domain.WaitingEntry
	chat     []domain.ChatEntry
	host     domain.ConnID
}

// RoomStore owns room membership, waiting lists, chat logs and host pointers.
// Reads return copies so callers never observe a list mid-mutation.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*roomState
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[domain.RoomID]*roomState)}
}

// Ensure creates empty containers for the room if absent.
func (s *RoomStore) Ensure(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(id)
}

func (s *RoomStore) ensure(id domain.RoomID) *roomState {
	if st, ok := s.rooms[id]; ok {
		return st
	}
	st := &roomState{}
	s.rooms[id] = st
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return st
}

func (s *RoomStore) Exists(id domain.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok
}

// AddAdmitted appends the connection unless already present.
func (s *RoomStore) AddAdmitted(id domain.RoomID, conn domain.ConnID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(id)
	if lo.Contains(st.admitted, conn) {
		return false
	}
	st.admitted = append(st.admitted, conn)
	return true
}

func (s *RoomStore) RemoveAdmitted(id domain.RoomID, conn domain.ConnID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.rooms[id]
	if !ok || !lo.Contains(st.admitted, conn) {
		return false
	}
	st.admitted = lo.Without(st.admitted, conn)
	return true
}

func (s *RoomStore) IsAdmitted(id domain.RoomID, conn domain.ConnID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rooms[id]
	return ok && lo.Contains(st.admitted, conn)
}

// AddWaiting upserts by connection id: an existing entry is dropped and the
// new one goes to the back of the queue.
func (s *RoomStore) AddWaiting(id domain.RoomID, entry domain.WaitingEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(id)
	st.waiting = lo.Filter(st.waiting, func(w domain.WaitingEntry, _ int) bool {
		return w.ID != entry.ID
	})
	st.waiting = append(st.waiting, entry)
}

func (s *RoomStore) RemoveWaiting(id domain.RoomID, conn domain.ConnID) (domain.WaitingEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.rooms[id]
	if !ok {
		return domain.WaitingEntry{}, false
	}
	entry, found := lo.Find(st.waiting, func(w domain.WaitingEntry) bool { return w.ID == conn })
	if !found {
		return domain.WaitingEntry{}, false
	}
	st.waiting = lo.Filter(st.waiting, func(w domain.WaitingEntry, _ int) bool {
		return w.ID != conn
	})
	return entry, true
}

func (s *RoomStore) AppendChat(id domain.RoomID, entry domain.ChatEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(id)
	st.chat = append(st.chat, entry)
}

// Admitted returns the admitted list in admission order.
func (s *RoomStore) Admitted(id domain.RoomID) []domain.ConnID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.rooms[id]; ok {
		return slices.Clone(st.admitted)
	}
	return nil
}

// Waiting never returns nil so views always encode as a JSON array.
func (s *RoomStore) Waiting(id domain.RoomID) []domain.WaitingEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.rooms[id]; ok && len(st.waiting) > 0 {
		return slices.Clone(st.waiting)
	}
	return []domain.WaitingEntry{}
}

func (s *RoomStore) Chat(id domain.RoomID) []domain.ChatEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.rooms[id]; ok {
		return slices.Clone(st.chat)
	}
	return nil
}

func (s *RoomStore) Host(id domain.RoomID) (domain.ConnID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rooms[id]
	if !ok || st.host == "" {
		return "", false
	}
	return st.host, true
}

// SetHost records the host. The caller guarantees conn is admitted.
func (s *RoomStore) SetHost(id domain.RoomID, conn domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(id).host = conn
}

// Teardown drops every trace of the room and returns whoever was still
// waiting so the caller can release them.
func (s *RoomStore) Teardown(id domain.RoomID) []domain.WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.rooms[id]
	if !ok {
		return nil
	}
	delete(s.rooms, id)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Int("stranded", len(st.waiting)).Msg("room torn down")
	return st.waiting
}

func (s *RoomStore) Info(id domain.RoomID) (core.RoomInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rooms[id]
	if !ok {
		return core.RoomInfo{}, false
	}
	return st.info(id), true
}

// List returns rooms sorted by id.
func (s *RoomStore) List() []core.RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(s.rooms))
	for id, st := range s.rooms {
		out = append(out, st.info(id))
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (st *roomState) info(id domain.RoomID) core.RoomInfo {
	return core.RoomInfo{
		ID:           id,
		Participants: len(st.admitted),
		Waiting:      len(st.waiting),
		HasHost:      st.host != "",
	}
}
