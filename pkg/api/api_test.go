package api

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestPacketNames(t *testing.T) {
	names := map[PT]string{
		ScreenInfo:        "screen-info",
		StatusUpdate:      "status-update",
		Offer:             "offer",
		Answer:            "answer",
		IceCandidate:      "icecandidate",
		Screenshot:        "screenshot",
		RequestScreenshot: "request-screenshot",
		RequestScreen:     "request-screen",
		StopScreen:        "stop-screen",
		MouseMove:         "mouse-move",
		MouseClick:        "mouse-click",
		MouseUp:           "mouse-up",
		MouseScroll:       "mouse-scroll",
		KeyDown:           "key-down",
		KeyUp:             "key-up",
		KeyTap:            "key-tap",
		KeyType:           "key-type",
		LockStation:       "lock-station",
		UnlockStation:     "unlock-station",
		ShutdownStation:   "shutdown-station",
		RestartStation:    "restart-station",
		MessageStation:    "message-station",
		ShowMessage:       "show-message",
		OpenApp:           "open-app",
		BroadcastCommand:  "broadcast-command",
		StationOnline:     "station-online",
		StationOffline:    "station-offline",
		StationList:       "station-list",
	}
	for pt, want := range names {
		if got := pt.String(); got != want {
			t.Errorf("PT(%d) = %q, want %q", pt, got, want)
		}
	}
	if got := PT(255).String(); got != "unknown" {
		t.Errorf("unexpected name for an unknown code: %q", got)
	}
}

func TestPacketClasses(t *testing.T) {
	for _, pt := range []PT{MouseMove, MouseClick, MouseUp, MouseScroll, KeyDown, KeyUp, KeyTap, KeyType} {
		if !pt.IsInput() {
			t.Errorf("%v should be an input event", pt)
		}
		if pt.IsManagement() {
			t.Errorf("%v should not be a management command", pt)
		}
	}
	for _, pt := range []PT{LockStation, UnlockStation, ShutdownStation, RestartStation, MessageStation, OpenApp} {
		if !pt.IsManagement() {
			t.Errorf("%v should be a management command", pt)
		}
		if pt.IsInput() {
			t.Errorf("%v should not be an input event", pt)
		}
	}
	if Offer.IsInput() || Offer.IsManagement() {
		t.Error("signaling should be neither input nor management")
	}
}

func TestRecordClone(t *testing.T) {
	rec := StationRecord{StationId: "ST-1", ScreenInfo: json.RawMessage(`{"w":1920}`)}
	clone := rec.Clone()

	clone.ScreenInfo[1] = 'x'
	if string(rec.ScreenInfo) != `{"w":1920}` {
		t.Errorf("clone shares screen info with the original: %s", rec.ScreenInfo)
	}
}

func TestUnwrap(t *testing.T) {
	if rq := Unwrap[BroadcastRequest]([]byte(`{"command":50,"stationSocketIds":[]}`)); rq == nil || rq.Command != 50 {
		t.Errorf("unexpected unwrap result: %+v", rq)
	}
	if rq := Unwrap[BroadcastRequest]([]byte(`{"command":"nope"}`)); rq != nil {
		t.Errorf("malformed payload should not unwrap, got %+v", rq)
	}
}
