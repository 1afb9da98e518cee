package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, id domain.ConnID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(id)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(ctl.opts.WriteWait))
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("ping failed")
				return
			}
		}
	}
}

// readPump owns the connection lifetime: when it returns, the connection is
// gone for the orchestrator. It runs Disconnect exactly once.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnID, c *WsSignalConn) {
	defer func() {
		cancel()
		ctl.Hub.Remove(id)
		ctl.limiter.Forget(id)
		ctl.Orch.Disconnect(id)
		c.Close()
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("connection closed")
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
		ctl.handleSignal(id, data)
	}
}

func (ctl *SignalWSController) handleSignal(id domain.ConnID, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad json")
		return
	}

	switch msg.Type {
	case core.EventJoinRoom:
		ctl.handleJoin(id, msg.Payload)
	case core.EventAdmitUser:
		ctl.handleAdmit(id, msg.Payload)
	case core.EventDenyUser:
		ctl.handleDeny(id, msg.Payload)
	case core.EventSignal:
		ctl.handleRelay(id, msg.Payload)
	case core.EventChatMessage, core.EventHandRaise, core.EventReaction:
		if !ctl.limiter.Allow(id) {
			log.Debug().Str("module", "signal").Str("conn", string(id)).Str("type", msg.Type).Msg("flood limit hit")
			return
		}
		switch msg.Type {
		case core.EventChatMessage:
			ctl.handleChat(id, msg.Payload)
		case core.EventHandRaise:
			ctl.handleHandRaise(id, msg.Payload)
		default:
			ctl.handleReaction(id, msg.Payload)
		}
	case core.EventPing:
		ctl.handlePing(id)
	default:
		log.Warn().Str("module", "signal").Str("conn", string(id)).Str("type", msg.Type).Msg("unknown signal")
	}
}

// decode fills dst from the payload and validates it. Malformed payloads are
// logged and ignored.
func (ctl *SignalWSController) decode(id domain.ConnID, event string, raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Str("type", event).Msg("bad payload")
		return false
	}
	if err := ctl.validate.Struct(dst); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Str("type", event).Msg("invalid payload")
		return false
	}
	return true
}
