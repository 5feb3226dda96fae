package com

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/remotelab/stationhub/pkg/logger"
)

const (
	maxMessageSize = 8 << 20 // screenshot frames are whole images
	writeWait      = 10 * time.Second
	sendQueueSize  = 256
)

// Heartbeat holds transport liveness params: the server pings every
// Interval and drops the peer when no pong lands within Interval+Timeout.
type Heartbeat struct {
	Interval time.Duration
	Timeout  time.Duration
}

var DefaultHeartbeat = Heartbeat{Interval: 10 * time.Second, Timeout: 5 * time.Second}

func (h Heartbeat) pongWait() time.Duration {
	if h.Interval <= 0 {
		h = DefaultHeartbeat
	}
	return h.Interval + h.Timeout
}

// WS wraps a single websocket connection with send/receive pumps.
//
// Writes go through a bounded queue and never block the caller:
// when a peer can't keep up, its frames are dropped (best-effort
// push semantics). Reads are serialized into the OnMessage callback,
// so per-connection message ordering is preserved.
type WS struct {
	conn *websocket.Conn
	send chan []byte
	beat Heartbeat
	log  *logger.Logger

	OnMessage func(data []byte)

	Done      chan struct{}
	closeOnce sync.Once
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
	// the dashboard and agents connect cross-origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServerWS upgrades an incoming HTTP request to a websocket connection.
func NewServerWS(w http.ResponseWriter, r *http.Request, beat Heartbeat, log *logger.Logger) (*WS, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	if beat.Interval <= 0 {
		beat = DefaultHeartbeat
	}
	return &WS{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		beat: beat,
		log:  log,
		Done: make(chan struct{}),
	}, nil
}

// Listen starts the connection pumps. Non-blocking; the Done channel
// is closed as soon as the peer is gone.
func (ws *WS) Listen() {
	go ws.writer()
	go ws.reader()
}

// Write puts a message into the send queue.
// Reports false when the message was dropped (dead peer or full queue).
func (ws *WS) Write(data []byte) bool {
	select {
	case <-ws.Done:
		return false
	default:
	}
	select {
	case ws.send <- data:
		return true
	default:
		return false
	}
}

// Close terminates the connection. A disconnect is immediate and
// unconditional, queued messages are not drained.
func (ws *WS) Close() {
	ws.closeOnce.Do(func() {
		_ = ws.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = ws.conn.Close()
	})
}

// reader pumps messages from the websocket connection to the OnMessage callback.
// Serializes all websocket reads.
func (ws *WS) reader() {
	defer func() {
		close(ws.Done)
		ws.Close()
	}()
	ws.conn.SetReadLimit(maxMessageSize)
	_ = ws.conn.SetReadDeadline(time.Now().Add(ws.beat.pongWait()))
	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(ws.beat.pongWait()))
	})
	for {
		_, message, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.log.Debug().Err(err).Msg("read fail")
			}
			return
		}
		if ws.OnMessage != nil {
			ws.OnMessage(message)
		}
	}
}

// writer pumps messages from the send queue to the websocket connection.
// Serializes all websocket writes.
func (ws *WS) writer() {
	ticker := time.NewTicker(ws.beat.Interval)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()
	for {
		select {
		case message := <-ws.send:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ws.Done:
			return
		}
	}
}

// RemoteAddr returns the network address of the peer.
func (ws *WS) RemoteAddr() string { return ws.conn.RemoteAddr().String() }
