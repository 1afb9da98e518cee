// Package signal is the WebSocket transport: it turns frames into
// orchestrator events and delivers orchestrator events as frames.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/config"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// Options are the per-connection transport limits.
type Options struct {
	ReadLimit      int64
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	SendBuffer     int
	AllowedOrigins []string
	FloodLimit     int
	FloodInterval  time.Duration
}

const (
	defaultWriteWait      = 10 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultMaxMessageSize = 64 * 1024
)

func (o Options) withDefaults() Options {
	if o.WriteWait <= 0 {
		o.WriteWait = defaultWriteWait
	}
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	if o.PingPeriod <= 0 || o.PingPeriod >= o.PongWait {
		o.PingPeriod = (o.PongWait * 9) / 10
	}
	if o.ReadLimit <= 0 {
		o.ReadLimit = defaultMaxMessageSize
	}
	return o
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ReadLimit:      cfg.ReadLimit,
		WriteWait:      cfg.WriteWait,
		PongWait:       cfg.PongWait,
		PingPeriod:     cfg.PingPeriod,
		SendBuffer:     cfg.SendBuffer,
		AllowedOrigins: cfg.AllowedOrigins,
		FloodLimit:     cfg.FloodLimit,
		FloodInterval:  cfg.FloodInterval,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	if buffer <= 0 {
		buffer = 64
	}
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, buffer)}
}

// TrySend queues a frame without blocking.
func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

type SignalWSController struct {
	Orch *orch.Orchestrator
	Hub  *Hub

	opts     Options
	upgrader websocket.Upgrader
	limiter  *FloodLimiter
	validate *validator.Validate
}

func NewSignalWSController(o *orch.Orchestrator, hub *Hub, opts Options) *SignalWSController {
	opts = opts.withDefaults()
	ctl := &SignalWSController{
		Orch:     o,
		Hub:      hub,
		opts:     opts,
		limiter:  NewFloodLimiter(opts.FloodLimit, opts.FloodInterval),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	ctl.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     ctl.checkOrigin,
	}
	return ctl
}

// checkOrigin admits non-browser clients (no Origin header) and the
// configured browser origins.
func (ctl *SignalWSController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if lo.Contains(ctl.opts.AllowedOrigins, origin) {
		return true
	}
	log.Warn().Str("module", "signal").Str("origin", origin).Msg("origin rejected")
	return false
}

// HandleSignal upgrades the request and runs the connection until either
// side closes it. ctx is the server lifetime, not the request's.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	id := domain.ConnID(uuid.NewString())
	log.Info().
		Str("module", "signal").
		Str("conn", string(id)).
		Str("sid", c.GetString("client_token")).
		Msg("new WS connection")

	conn := newWsSignalConn(ws, ctl.opts.SendBuffer)
	ctl.Hub.Add(id, conn)
	ctl.Orch.Connect(id)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, id, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
