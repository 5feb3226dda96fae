package com

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/remotelab/stationhub/pkg/logger"
)

// spins up an echo peer: every packet is sent back under the same type.
func newEchoServer(t *testing.T) *httptest.Server {
	log := logger.Default()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := NewServerWS(w, r, DefaultHeartbeat, log)
		if err != nil {
			t.Errorf("upgrade fail: %v", err)
			return
		}
		client := NewClient(ws, "echo", log)
		client.OnPacket(func(in In) { client.Forward(in.T, in.Payload) })
		client.Listen()
	}))
}

func TestWebsocketRoundTrip(t *testing.T) {
	server := newEchoServer(t)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial fail: %v", err)
	}
	defer conn.Close()

	calls := []Out{
		{T: 10, Payload: "test"},
		{T: 11, Payload: map[string]any{"x": 1.0}},
		{T: 99},
		{T: 20, Payload: []string{"a", "b"}},
	}
	for _, call := range calls {
		data, err := json.Marshal(call)
		if err != nil {
			t.Fatalf("encode fail: %v", err)
		}
		if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
			t.Fatalf("write fail: %v", err)
		}

		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, echo, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read fail: %v", err)
		}
		var in In
		if err = json.Unmarshal(echo, &in); err != nil {
			t.Fatalf("decode fail: %v", err)
		}
		if in.T != call.T {
			t.Errorf("unexpected type: %v (want %v)", in.T, call.T)
		}
		want, _ := json.Marshal(call.Payload)
		if call.Payload != nil && string(in.Payload) != string(want) {
			t.Errorf("unexpected payload: %s (want %s)", in.Payload, want)
		}
	}
}

func TestWebsocketMalformedPacket(t *testing.T) {
	server := newEchoServer(t)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial fail: %v", err)
	}
	defer conn.Close()

	// garbage is dropped without killing the connection
	if err = conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write fail: %v", err)
	}
	data, _ := json.Marshal(Out{T: 1, Payload: "ok"})
	if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write fail: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, echo, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("connection should survive a malformed packet: %v", err)
	}
	var in In
	if err = json.Unmarshal(echo, &in); err != nil || in.T != 1 {
		t.Errorf("unexpected echo: %s, %v", echo, err)
	}
}
