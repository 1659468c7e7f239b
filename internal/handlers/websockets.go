package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"brewery_dashboard/internal/service"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12 // 4 KB
	minInterval = 500 * time.Millisecond
	maxInterval = 60 * time.Second

	wsTypeSnapshot = "snapshot"
	wsTypeError    = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Dashboards are served from the same host; origin checks happen at the proxy.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect streams snapshots. A frame is written only when the snapshot id
// changes, plus one error frame while no snapshot exists yet.
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	st := &streamState{}
	if err := h.sendSnapshot(ctx, conn, st); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendSnapshot(ctx, conn, st); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000; out-of-range values
// fall back to the configured default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && inStreamRange(d) {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && inStreamRange(time.Duration(v)*time.Millisecond) {
			return time.Duration(v) * time.Millisecond
		}
	}
	return h.streamInterval
}

func inStreamRange(d time.Duration) bool { return d >= minInterval && d <= maxInterval }

// startReader drains incoming frames so control messages are handled and closure is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// streamState remembers what this connection has already been sent.
type streamState struct {
	lastID     string
	sentNoSnap bool
}

// sendSnapshot writes the latest snapshot if it differs from the last one sent.
// Only write failures are returned.
func (h *Handler) sendSnapshot(ctx context.Context, conn *websocket.Conn, st *streamState) error {
	snap, err := h.services.Dashboard.Snapshot(ctx)
	if err != nil {
		if !errors.Is(err, service.ErrNoSnapshot) && h.log != nil {
			h.log.Errorw("ws_get_snapshot_failed", "err", err)
		}
		if st.sentNoSnap {
			return nil
		}
		st.sentNoSnap = true
		msg := errLoadSnapshot
		if errors.Is(err, service.ErrNoSnapshot) {
			msg = errNoSnapshot
		}
		return writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: msg})
	}
	if snap.ID == st.lastID {
		return nil
	}
	if err := writeEnvelope(conn, wsEnvelope{Type: wsTypeSnapshot, Data: snap}); err != nil {
		return err
	}
	st.lastID = snap.ID
	st.sentNoSnap = false
	return nil
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
