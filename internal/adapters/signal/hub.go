package signal

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

type hubEntry struct {
	conn    core.SignalConnection
	dropped int
}

// Hub maps connection ids to live channels and implements core.Transport.
// Delivery never blocks: a full queue is handed to the backpressure policy.
type Hub struct {
	mu     sync.Mutex
	conns  map[domain.ConnID]*hubEntry
	policy app.Policy
}

var _ core.Transport = (*Hub)(nil)

func NewHub(policy app.Policy) *Hub {
	if policy == nil {
		policy = app.SimplePolicy{}
	}
	return &Hub{
		conns:  make(map[domain.ConnID]*hubEntry),
		policy: policy,
	}
}

func (h *Hub) Add(id domain.ConnID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = &hubEntry{conn: conn}
}

func (h *Hub) Remove(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) Send(to domain.ConnID, event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("event", event).Msg("encode frame")
		return
	}
	h.deliver(to, event, frame)
}

// Broadcast encodes once and delivers the same frame to every recipient.
func (h *Hub) Broadcast(to []domain.ConnID, event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("event", event).Msg("encode frame")
		return
	}
	for _, id := range to {
		h.deliver(id, event, frame)
	}
}

func (h *Hub) deliver(id domain.ConnID, event string, frame core.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.conns[id]
	if !ok {
		log.Debug().Str("module", "signal.hub").Str("conn", string(id)).Str("event", event).Msg("drop: unknown connection")
		return
	}
	err := e.conn.TrySend(frame)
	switch {
	case err == nil:
		e.dropped = 0
	case errors.Is(err, ErrBackpressure):
		e.dropped++
		action := h.policy.OnBackPressure(id, e.dropped)
		log.Warn().
			Str("module", "signal.hub").
			Str("conn", string(id)).
			Str("event", event).
			Int("dropped", e.dropped).
			Str("action", action.String()).
			Msg("send queue full")
		if action == app.KickMember {
			e.conn.Close()
		}
	default:
		log.Debug().Err(err).Str("module", "signal.hub").Str("conn", string(id)).Str("event", event).Msg("drop: send failed")
	}
}

// Message is the wire envelope in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encode(event string, payload any) (core.Frame, error) {
	msg := Message{Type: event}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = raw
	}
	return json.Marshal(msg)
}
