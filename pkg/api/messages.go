package api

import (
	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/com"
)

// Addressing marks. An admin names the target station, a station names
// the target admin; the hub stamps the sender's id on the way through
// so the receiver can reply to the correct peer.
type (
	StationBound struct {
		StationSocketId com.Uid `json:"stationSocketId"`
	}
	AdminBound struct {
		TargetAdminId com.Uid `json:"targetAdminId"`
	}
	FromStation struct {
		StationSocketId com.Uid `json:"stationSocketId"`
	}
	FromAdmin struct {
		AdminSocketId com.Uid `json:"adminSocketId"`
	}
)

// Station state reports.
type (
	ScreenInfoRequest struct {
		Info json.RawMessage `json:"info"`
	}
)

// Signaling. The sdp/candidate/image bodies are opaque bytes,
// the hub never decodes them.
type (
	// admin -> station
	OfferRequest struct {
		StationBound
		Sdp json.RawMessage `json:"sdp"`
	}
	AnswerRequest struct {
		StationBound
		Sdp json.RawMessage `json:"sdp"`
	}
	IceCandidateRequest struct {
		StationBound
		Candidate json.RawMessage `json:"candidate"`
	}
	// relayed to the station; the agent answers to targetAdminId
	OfferForward struct {
		AdminBound
		Sdp json.RawMessage `json:"sdp"`
	}
	AnswerForward struct {
		FromAdmin
		Sdp json.RawMessage `json:"sdp"`
	}
	IceCandidateForward struct {
		FromAdmin
		Candidate json.RawMessage `json:"candidate"`
	}

	// station -> admin
	StationOfferRequest struct {
		AdminBound
		Sdp json.RawMessage `json:"sdp"`
	}
	StationAnswerRequest struct {
		AdminBound
		Sdp json.RawMessage `json:"sdp"`
	}
	StationIceCandidateRequest struct {
		AdminBound
		Candidate json.RawMessage `json:"candidate"`
	}
	ScreenshotRequest struct {
		AdminBound
		Image json.RawMessage `json:"image"`
	}
	// relayed to the admin; offers also carry the logical station id
	OfferNotice struct {
		FromStation
		StationId string          `json:"stationId"`
		Sdp       json.RawMessage `json:"sdp"`
	}
	AnswerNotice struct {
		FromStation
		Sdp json.RawMessage `json:"sdp"`
	}
	IceCandidateNotice struct {
		FromStation
		Candidate json.RawMessage `json:"candidate"`
	}
	ScreenshotNotice struct {
		FromStation
		Image json.RawMessage `json:"image"`
	}
)

// Screen streaming control.
type (
	ScreenControlRequest struct {
		StationBound
	}
	ScreenControlForward struct {
		FromAdmin
	}
	ScreenshotPullForward struct {
		AdminBound
	}
)

// Management command payloads worth logging.
type (
	MessageStationRequest struct {
		StationBound
		Message string `json:"message"`
	}
	OpenAppRequest struct {
		StationBound
		AppPath string `json:"appPath"`
	}
)

// BroadcastRequest fans one command out to a list of stations.
// The command code is forwarded as-is, without a vocabulary check.
type BroadcastRequest struct {
	Command          uint8           `json:"command"`
	StationSocketIds []com.Uid       `json:"stationSocketIds"`
	Payload          json.RawMessage `json:"payload"`
}

// OfflineNotice tells admins a station has left.
type OfflineNotice struct {
	SocketId  com.Uid `json:"socketId"`
	StationId string  `json:"stationId"`
}
