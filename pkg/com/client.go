package com

import (
	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/logger"
)

// Client is a JSON packet layer on top of a websocket connection.
type Client struct {
	id  Uid
	ws  *WS
	Log *logger.Logger
}

func NewClient(ws *WS, tag string, log *logger.Logger) *Client {
	id := NewUid()
	clog := log.Extend(log.With().Str("cid", tag+":"+id.Short()))
	clog.Debug().Msg("connect")
	return &Client{id: id, ws: ws, Log: clog}
}

func (c *Client) Id() Uid { return c.id }

// OnPacket sets the packet handler; it is called sequentially,
// in the order messages arrive on this connection.
func (c *Client) OnPacket(fn func(in In)) {
	c.ws.OnMessage = func(data []byte) {
		var packet In
		if err := json.Unmarshal(data, &packet); err != nil {
			c.Log.Warn().Err(err).Msg("malformed packet")
			return
		}
		fn(packet)
	}
}

// Notify sends a message and doesn't wait for anything.
func (c *Client) Notify(t uint8, payload any) {
	data, err := json.Marshal(Out{T: t, Payload: payload})
	if err != nil {
		c.Log.Error().Err(err).Msg("packet encode fail")
		return
	}
	c.push(data)
}

// Forward relays an already-encoded payload verbatim under the given type.
func (c *Client) Forward(t uint8, payload json.RawMessage) {
	var p any
	if len(payload) > 0 {
		p = payload
	}
	c.Notify(t, p)
}

func (c *Client) push(data []byte) {
	if !c.ws.Write(data) {
		c.Log.Warn().Msg("slow peer, message dropped")
	}
}

// Listen starts the connection pumps.
func (c *Client) Listen() { c.ws.Listen() }

// Wait blocks until the peer is gone.
func (c *Client) Wait() { <-c.ws.Done }

func (c *Client) Disconnect() {
	c.ws.Close()
	c.Log.Debug().Msg("close")
}

func (c *Client) RemoteAddr() string { return c.ws.RemoteAddr() }
