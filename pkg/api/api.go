// Package api defines the wire protocol between station agents,
// admin dashboards, and the hub.
//
// Packet type codes:
//
//	1x - station state reports
//	2x - webrtc signaling (both directions)
//	3x - screen streaming control
//	4x - remote input events
//	5x - management commands
//	6x - multi-station fan-out
//	7x - hub pushes to admins
package api

import "github.com/goccy/go-json"

type PT uint8

const (
	ScreenInfo   PT = 10
	StatusUpdate PT = 11

	Offer        PT = 20
	Answer       PT = 21
	IceCandidate PT = 22

	Screenshot        PT = 30
	RequestScreenshot PT = 31
	RequestScreen     PT = 32
	StopScreen        PT = 33

	MouseMove   PT = 40
	MouseClick  PT = 41
	MouseUp     PT = 42
	MouseScroll PT = 43
	KeyDown     PT = 44
	KeyUp       PT = 45
	KeyTap      PT = 46
	KeyType     PT = 47

	LockStation     PT = 50
	UnlockStation   PT = 51
	ShutdownStation PT = 52
	RestartStation  PT = 53
	MessageStation  PT = 54
	ShowMessage     PT = 55
	OpenApp         PT = 56

	BroadcastCommand PT = 60

	StationOnline  PT = 70
	StationOffline PT = 71
	StationList    PT = 72
)

func (p PT) String() string {
	switch p {
	case ScreenInfo:
		return "screen-info"
	case StatusUpdate:
		return "status-update"
	case Offer:
		return "offer"
	case Answer:
		return "answer"
	case IceCandidate:
		return "icecandidate"
	case Screenshot:
		return "screenshot"
	case RequestScreenshot:
		return "request-screenshot"
	case RequestScreen:
		return "request-screen"
	case StopScreen:
		return "stop-screen"
	case MouseMove:
		return "mouse-move"
	case MouseClick:
		return "mouse-click"
	case MouseUp:
		return "mouse-up"
	case MouseScroll:
		return "mouse-scroll"
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	case KeyTap:
		return "key-tap"
	case KeyType:
		return "key-type"
	case LockStation:
		return "lock-station"
	case UnlockStation:
		return "unlock-station"
	case ShutdownStation:
		return "shutdown-station"
	case RestartStation:
		return "restart-station"
	case MessageStation:
		return "message-station"
	case ShowMessage:
		return "show-message"
	case OpenApp:
		return "open-app"
	case BroadcastCommand:
		return "broadcast-command"
	case StationOnline:
		return "station-online"
	case StationOffline:
		return "station-offline"
	case StationList:
		return "station-list"
	default:
		return "unknown"
	}
}

// IsInput says whether the packet belongs to the high-frequency
// remote input stream. Input events are kept off the audit log.
func (p PT) IsInput() bool { return p >= MouseMove && p <= KeyType }

// IsManagement says whether the packet is a low-frequency management command.
func (p PT) IsManagement() bool { return p >= LockStation && p <= OpenApp }

// Unwrap decodes a raw payload into T, nil on malformed data.
func Unwrap[T any](data []byte) *T {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil
	}
	return out
}
